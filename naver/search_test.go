package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscout/config"
	"roomscout/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

func searchAddr(buildingNorm, roadName string) *models.ResolvedAddress {
	return &models.ResolvedAddress{
		Road:                   models.RoadAddress{RoadName: roadName},
		BuildingName:           buildingNorm,
		BuildingNameNormalized: buildingNorm,
	}
}

func newSearchClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(config.NaverEndpoints{
		SearchBaseURL:  ts.URL,
		ComplexBaseURL: ts.URL,
	})
}

func TestResolveComplex_NoResult(t *testing.T) {
	c := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(loadFixture(t, "search_noresult.html"))
	}))

	_, err := c.ResolveComplex(context.Background(), searchAddr("없는건물", "남부순환로"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result")
}

func TestResolveComplex_DisambiguationByRoadName(t *testing.T) {
	var path string
	c := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write(loadFixture(t, "search_disambiguation.html"))
	}))

	// Trailing unit digits are stripped from the search key, and of the
	// three candidates the first whose address contains the road name wins.
	id, err := c.ResolveComplex(context.Background(), searchAddr("신안메트로칸7", "남부순환로"))
	require.NoError(t, err)
	assert.Equal(t, "19428", id)
	assert.Equal(t, "/search/result/신안메트로칸", path)
}

func TestResolveComplex_DisambiguationNoRoadMatch(t *testing.T) {
	c := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(loadFixture(t, "search_disambiguation.html"))
	}))

	_, err := c.ResolveComplex(context.Background(), searchAddr("신안메트로칸", "테헤란로"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidate")
}

func TestResolveComplex_RedirectToComplexPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/result/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/complexes/55555", http.StatusFound)
	})
	mux.HandleFunc("/complexes/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><div class=\"complex_home\"></div></body></html>"))
	})
	c := newSearchClient(t, mux)

	id, err := c.ResolveComplex(context.Background(), searchAddr("힐스테이트", "남부순환로"))
	require.NoError(t, err)
	assert.Equal(t, "55555", id)
}

func TestResolveComplex_EmptySearchKey(t *testing.T) {
	c := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty search key")
	}))

	_, err := c.ResolveComplex(context.Background(), searchAddr("102", "남부순환로"))
	require.Error(t, err)
}
