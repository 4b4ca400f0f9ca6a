package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"roomscout/config"
	"roomscout/geocode"
	"roomscout/logging"
	"roomscout/models"
	"roomscout/naver"
	"roomscout/sam"
	"roomscout/scheduler"
	"roomscout/services"
	"roomscout/workers"
)

var (
	roomID   = flag.String("room", "", "Resolve a single room ID and exit")
	keyword  = flag.String("keyword", "", "Discover rooms by keyword, resolve them, and exit")
	bounds   = flag.String("bounds", "", "Discover rooms inside ne_lng,ne_lat,sw_lng,sw_lat and exit")
	mapLevel = flag.Int("map-level", 3, "Map zoom level for -bounds")
	exact    = flag.Bool("exact", false, "Require an exact floor-area match in the cross-reference")
	daemon   = flag.Bool("daemon", false, "Run scheduled keyword discoveries until interrupted")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	if cfg.Kakao.RESTAPIKey == "" {
		log.Println("Warning: no Kakao REST API key configured, geocoding will fail")
	}

	samClient := sam.NewClient(cfg.Sources.Sam)
	geoClient := geocode.NewClient(cfg.Kakao.RESTAPIKey, cfg.Sources.Kakao)
	naverClient := naver.NewClient(cfg.Sources.Naver)
	roomService := services.NewRoomService(samClient, geoClient, naverClient, cfg.Resolver.VacancyWindow)
	pool := workers.NewResolvePool(roomService, cfg.Resolver.Workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *roomID != "":
		room := resolveOne(ctx, roomService, *roomID)
		printRoom(room)

	case *keyword != "":
		ids, err := samClient.SearchKeyword(ctx, *keyword, cfg.Resolver.PropertyType, cfg.Resolver.MaxSearchPage)
		if err != nil {
			log.Printf("Warning: discovery %q: %v", *keyword, err)
		}
		log.Printf("Discovery %q: %d rooms", *keyword, len(ids))
		rooms, _ := pool.Run(ctx, "keyword:"+*keyword, ids)
		printRooms(rooms)

	case *bounds != "":
		b, err := parseBounds(*bounds)
		if err != nil {
			log.Fatalf("Invalid -bounds: %v", err)
		}
		ids, err := samClient.SearchMap(ctx, b, *mapLevel, cfg.Resolver.PropertyType)
		if err != nil {
			log.Fatalf("Map discovery failed: %v", err)
		}
		log.Printf("Map discovery: %d rooms", len(ids))
		rooms, _ := pool.Run(ctx, "map", ids)
		printRooms(rooms)

	case *daemon:
		sched := scheduler.New(cfg, samClient, pool)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		// First pass runs right away; the schedule takes over from there.
		go sched.TriggerNow(ctx)
		log.Println("Daemon running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		sched.Stop()

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func resolveOne(ctx context.Context, svc *services.RoomService, id string) *models.Room {
	if *exact {
		return svc.ResolveExact(ctx, id)
	}
	return svc.Resolve(ctx, id)
}

func printRoom(room *models.Room) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(room); err != nil {
		log.Printf("Warning: encode room %s: %v", room.SamID, err)
	}
}

func printRooms(rooms []*models.Room) {
	for _, room := range rooms {
		printRoom(room)
	}
}

// parseBounds reads "ne_lng,ne_lat,sw_lng,sw_lat".
func parseBounds(s string) (models.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return models.Bounds{}, strconv.ErrSyntax
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.Bounds{}, err
		}
		vals[i] = v
	}
	return models.Bounds{
		NorthEastLng: vals[0],
		NorthEastLat: vals[1],
		SouthWestLng: vals[2],
		SouthWestLat: vals[3],
	}, nil
}
