package news

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
)

type fakeSearcher struct {
	calls    int
	articles []RawArticle
	err      error

	lastQuery    string
	lastLanguage string
}

func (f *fakeSearcher) Search(_ context.Context, query, language string, _ int) ([]RawArticle, error) {
	f.calls++
	f.lastQuery = query
	f.lastLanguage = language
	return f.articles, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func article(title, desc string) RawArticle {
	a := RawArticle{Title: title, Description: desc, URL: "https://example.com/a", PublishedAt: "2026-09-01T05:00:00Z"}
	a.Source.Name = "The Example"
	return a
}

func TestGetBuildsAgriQuery(t *testing.T) {
	searcher := &fakeSearcher{articles: []RawArticle{article("Mandi prices rise", "")}}
	svc := NewService(searcher, time.Minute, testLogger(), observability.NewMetricsForTesting())

	result, err := svc.Get(context.Background(), "", "en")
	require.NoError(t, err)

	assert.Equal(t, "(farmer OR agriculture OR mandi OR किसान OR कृषि) AND India", searcher.lastQuery)
	assert.Equal(t, "en", searcher.lastLanguage)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "The Example", result.Articles[0].Source)
}

func TestGetScopesQueryToState(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(searcher, time.Minute, testLogger(), observability.NewMetricsForTesting())

	_, err := svc.Get(context.Background(), "Punjab", "en")
	require.NoError(t, err)
	assert.Contains(t, searcher.lastQuery, "AND Punjab")
}

func TestGetDetectsStateFromText(t *testing.T) {
	searcher := &fakeSearcher{articles: []RawArticle{
		article("Wheat procurement in Haryana hits record", "mandi arrivals up"),
		article("Monsoon update", "no state mentioned"),
	}}
	svc := NewService(searcher, time.Minute, testLogger(), observability.NewMetricsForTesting())

	result, err := svc.Get(context.Background(), "", "en")
	require.NoError(t, err)

	assert.Equal(t, "Haryana", result.Articles[0].DetectedState)
	assert.Equal(t, "", result.Articles[1].DetectedState)
}

func TestGetCachesByStateAndLanguage(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(searcher, time.Minute, testLogger(), observability.NewMetricsForTesting())

	_, err := svc.Get(context.Background(), "Bihar", "en")
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), "Bihar", "en")
	require.NoError(t, err)
	assert.Equal(t, 1, searcher.calls, "second identical request should hit the cache")

	_, err = svc.Get(context.Background(), "Bihar", "hi")
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.calls, "different language is a different cache key")
}

func TestGetNormalizesLanguage(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(searcher, time.Minute, testLogger(), observability.NewMetricsForTesting())

	_, err := svc.Get(context.Background(), "", "fr")
	require.NoError(t, err)
	assert.Equal(t, "en", searcher.lastLanguage)
}

func TestGetWithoutClient(t *testing.T) {
	svc := NewService(nil, time.Minute, testLogger(), observability.NewMetricsForTesting())

	_, err := svc.Get(context.Background(), "", "en")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
