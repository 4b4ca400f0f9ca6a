package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Kakao     KakaoConfig
	Scheduler SchedulerConfig
	Resolver  ResolverConfig
	Sources   SourcesConfig
	LogPath   string
}

type KakaoConfig struct {
	RESTAPIKey string
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
	Keywords []string // discovery keywords re-run on each tick
}

type ResolverConfig struct {
	Workers       int
	VacancyWindow int // days counted for the vacancy rate
	PropertyType  string
	MaxSearchPage int
}

// SourcesConfig carries the external endpoints. Defaults point at the live
// sites; tests and config/sources.yaml may override any of them.
type SourcesConfig struct {
	Sam   SamEndpoints   `yaml:"sam"`
	Naver NaverEndpoints `yaml:"naver"`
	Kakao KakaoEndpoints `yaml:"kakao"`
}

type SamEndpoints struct {
	BaseURL       string `yaml:"base_url"`
	DetailPath    string `yaml:"detail_path"`
	BookingPath   string `yaml:"booking_path"`
	SchedulePath  string `yaml:"schedule_path"`
	SearchPath    string `yaml:"search_path"`
	MapSearchPath string `yaml:"map_search_path"`
}

type NaverEndpoints struct {
	SearchBaseURL  string `yaml:"search_base_url"`
	ComplexBaseURL string `yaml:"complex_base_url"`
}

type KakaoEndpoints struct {
	AddressURL string `yaml:"address_url"`
}

const (
	kakaoKeyFile    = ".kakaokey"
	sourcesFile     = "config/sources.yaml"
	defaultWindow   = 28
	defaultWorkers  = 4
	defaultMaxPages = 50
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Kakao: KakaoConfig{
			RESTAPIKey: loadKakaoKey(),
		},
		Scheduler: SchedulerConfig{
			Cron:     os.Getenv("SCRAPE_CRON"),
			Keywords: splitList(os.Getenv("SCRAPE_KEYWORDS")),
		},
		Resolver: ResolverConfig{
			Workers:       getEnvInt("RESOLVE_WORKERS", defaultWorkers),
			VacancyWindow: getEnvInt("VACANCY_WINDOW", defaultWindow),
			PropertyType:  getEnv("PROPERTY_TYPE", "오피스텔"),
			MaxSearchPage: getEnvInt("MAX_SEARCH_PAGES", defaultMaxPages),
		},
		Sources: DefaultSources(),
		LogPath: getEnv("LOG_PATH", "roomscout.log"),
	}

	if interval := os.Getenv("SCRAPE_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_INTERVAL: %w", err)
		}
		cfg.Scheduler.Interval = d
	}

	if err := cfg.loadSourceOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultSources returns the live endpoints.
func DefaultSources() SourcesConfig {
	return SourcesConfig{
		Sam: SamEndpoints{
			BaseURL:       "https://33m2.co.kr",
			DetailPath:    "/room/detail/",
			BookingPath:   "/webpc/booking/start",
			SchedulePath:  "/app/room/schedule",
			SearchPath:    "/webmobile/search/list/more",
			MapSearchPath: "/app/room/search",
		},
		Naver: NaverEndpoints{
			SearchBaseURL:  "https://m.land.naver.com",
			ComplexBaseURL: "https://fin.land.naver.com",
		},
		Kakao: KakaoEndpoints{
			AddressURL: "https://dapi.kakao.com/v2/local/search/address.json",
		},
	}
}

// loadKakaoKey prefers the environment, falling back to the .kakaokey file
// the original deployment provisioned.
func loadKakaoKey() string {
	if key := os.Getenv("KAKAO_REST_API_KEY"); key != "" {
		return key
	}
	data, err := os.ReadFile(kakaoKeyFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *Config) loadSourceOverrides() error {
	data, err := os.ReadFile(sourcesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, &c.Sources); err != nil {
		return fmt.Errorf("parse %s: %w", sourcesFile, err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
