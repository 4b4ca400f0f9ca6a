package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("KAKAO_REST_API_KEY", "test-key")
	t.Setenv("SCRAPE_KEYWORDS", "강남, 홍대 , ,신촌")
	t.Setenv("SCRAPE_INTERVAL", "2h")
	t.Setenv("VACANCY_WINDOW", "14")
	t.Setenv("RESOLVE_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Kakao.RESTAPIKey)
	assert.Equal(t, []string{"강남", "홍대", "신촌"}, cfg.Scheduler.Keywords)
	assert.Equal(t, 2*time.Hour, cfg.Scheduler.Interval)
	assert.Equal(t, 14, cfg.Resolver.VacancyWindow)
	assert.Equal(t, 8, cfg.Resolver.Workers)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VACANCY_WINDOW", "")
	t.Setenv("RESOLVE_WORKERS", "")
	t.Setenv("PROPERTY_TYPE", "")
	t.Setenv("SCRAPE_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 28, cfg.Resolver.VacancyWindow)
	assert.Equal(t, 4, cfg.Resolver.Workers)
	assert.Equal(t, "오피스텔", cfg.Resolver.PropertyType)
	assert.Equal(t, time.Duration(0), cfg.Scheduler.Interval)
	assert.Equal(t, "https://33m2.co.kr", cfg.Sources.Sam.BaseURL)
	assert.Equal(t, "https://dapi.kakao.com/v2/local/search/address.json", cfg.Sources.Kakao.AddressURL)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("SCRAPE_INTERVAL", "often")

	_, err := Load()
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
