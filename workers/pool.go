package workers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomscout/models"
	"roomscout/services"
)

// ResolvePool fans room resolution out across a fixed set of workers. Rooms
// are independent: no session, state, or ordering is shared between them,
// and a failed room degrades to a partial record rather than being retried.
type ResolvePool struct {
	svc     *services.RoomService
	workers int
}

func NewResolvePool(svc *services.RoomService, workers int) *ResolvePool {
	if workers < 1 {
		workers = 1
	}
	return &ResolvePool{svc: svc, workers: workers}
}

// Run resolves all ids and returns the records along with run stats. Result
// order follows completion, not input.
func (p *ResolvePool) Run(ctx context.Context, source string, ids []string) ([]*models.Room, *RunStats) {
	run := models.ResolveRun{
		ID:         uuid.New(),
		Source:     source,
		StartedAt:  time.Now(),
		Status:     models.RunStatusRunning,
		RoomsFound: len(ids),
	}
	log.Printf("Run %s: resolving %d rooms from %s with %d workers", run.ID, len(ids), source, p.workers)

	jobs := make(chan string)
	results := make(chan *models.Room)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				results <- p.svc.Resolve(ctx, id)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	stats := &RunStats{}
	var rooms []*models.Room
	for room := range results {
		rooms = append(rooms, room)
		stats.Aggregate(room)
	}

	now := time.Now()
	run.FinishedAt = &now
	run.Status = models.RunStatusCompleted
	if ctx.Err() != nil {
		run.Status = models.RunStatusFailed
	}
	log.Printf("Run %s: %s in %s: %s", run.ID, run.Status, now.Sub(run.StartedAt).Round(time.Second), stats.Summary())

	return rooms, stats
}
