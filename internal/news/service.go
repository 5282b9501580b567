package news

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/krishaksaarthi/saarthi-backend/internal/cache"
	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
)

const pageSize = 20

// agriKeywords select farmer-relevant articles in English and Hindi.
var agriKeywords = []string{"farmer", "agriculture", "mandi", "किसान", "कृषि"}

// indianStates is used to tag articles with the state they mention.
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
}

// Article is the cleaned farmer-facing article shape.
type Article struct {
	Title         string `json:"title"`
	Source        string `json:"source"`
	PublishedDate string `json:"publishedDate"`
	Description   string `json:"description"`
	ArticleURL    string `json:"articleUrl"`
	DetectedState string `json:"detectedState,omitempty"`
}

// Result is the composed news response.
type Result struct {
	Status   string    `json:"status"`
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
	Query    string    `json:"query"`
	Language string    `json:"language"`
}

// Searcher abstracts the upstream news API so the service can be tested
// without network access.
type Searcher interface {
	Search(ctx context.Context, query, language string, pageSize int) ([]RawArticle, error)
}

// Service serves agricultural news with a TTL-bounded memoization per
// (state, language) so repeated dashboard loads do not burn API quota.
type Service struct {
	client  Searcher
	cache   *cache.Cache[Result]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates the news service. client may be nil when no API key is
// configured; requests then fail with ErrMissingAPIKey.
func NewService(client Searcher, ttl time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		client:  client,
		cache:   cache.New[Result](ttl),
		logger:  logger,
		metrics: metrics,
	}
}

// Get returns agricultural news, optionally scoped to an Indian state.
// Language is "en" unless "hi" was requested.
func (s *Service) Get(ctx context.Context, state, language string) (Result, error) {
	if s.client == nil {
		return Result{}, ErrMissingAPIKey
	}

	if language != "hi" {
		language = "en"
	}

	key := state + "|" + language
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.NewsCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	s.metrics.NewsCacheLookups.WithLabelValues("miss").Inc()

	query := buildQuery(state)
	raw, err := s.client.Search(ctx, query, language, pageSize)
	if err != nil {
		return Result{}, err
	}

	articles := make([]Article, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, Article{
			Title:         a.Title,
			Source:        a.Source.Name,
			PublishedDate: a.PublishedAt,
			Description:   a.Description,
			ArticleURL:    a.URL,
			DetectedState: detectState(a, state),
		})
	}

	result := Result{
		Status:   "success",
		Count:    len(articles),
		Articles: articles,
		Query:    query,
		Language: language,
	}
	s.cache.Set(key, result)
	return result, nil
}

func buildQuery(state string) string {
	base := fmt.Sprintf("(%s)", strings.Join(agriKeywords, " OR "))
	location := "India"
	if state != "" {
		location = state
	}
	return base + " AND " + location
}

// detectState tags an article with the first Indian state its text mentions,
// unless the caller already filtered by state.
func detectState(a RawArticle, requested string) string {
	if requested != "" {
		return requested
	}
	content := strings.ToLower(a.Title + " " + a.Description)
	for _, st := range indianStates {
		if strings.Contains(content, strings.ToLower(st)) {
			return st
		}
	}
	return ""
}
