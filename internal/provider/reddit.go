package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/metrics"
)

const (
	redditBaseURL      = "https://www.reddit.com"
	defaultRedditUA    = "sentiment-pulse/1.0"
	defaultSubreddit   = "wallstreetbets"
	defaultRedditSort  = "new"
	redditPageSize     = 100
	maxRedditTitleSize = 300
)

type RedditOptions struct {
	Subreddit      string
	UserAgent      string
	Sort           string
	RequestsPerMin int
}

// RedditProvider searches one subreddit for posts mentioning a query.
type RedditProvider struct {
	client    *http.Client
	baseURL   string
	subreddit string
	userAgent string
	sort      string
	tracer    trace.Tracer
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
}

func NewRedditProvider(tracer trace.Tracer, m *metrics.Metrics, opts RedditOptions) *RedditProvider {
	p := &RedditProvider{
		client:    &http.Client{Timeout: 20 * time.Second},
		baseURL:   redditBaseURL,
		subreddit: strings.TrimSpace(opts.Subreddit),
		userAgent: strings.TrimSpace(opts.UserAgent),
		sort:      strings.TrimSpace(opts.Sort),
		tracer:    tracer,
		limiter:   NewRateLimiter(opts.RequestsPerMin, 2),
		metrics:   m,
	}
	if p.subreddit == "" {
		p.subreddit = defaultSubreddit
	}
	if p.userAgent == "" {
		p.userAgent = defaultRedditUA
	}
	if p.sort == "" {
		p.sort = defaultRedditSort
	}
	return p
}

type redditListing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Score      float64 `json:"score"`
				CreatedUTC float64 `json:"created_utc"`
				Permalink  string  `json:"permalink"`
				URL        string  `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchPosts returns up to limit posts matching query, paging through the
// search listing 100 posts at a time. Duplicate ids across pages are dropped.
func (p *RedditProvider) FetchPosts(ctx context.Context, query string, limit int) ([]domain.Post, error) {
	ctx, span := p.tracer.Start(ctx, "reddit.fetch-posts")
	defer span.End()
	span.SetAttributes(attribute.String("reddit.query", query), attribute.Int("reddit.limit", limit))

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		return []domain.Post{}, nil
	}

	started := time.Now()
	defer p.metrics.ObserveProvider("reddit", started)

	posts := make([]domain.Post, 0, limit)
	seen := make(map[string]bool, limit)
	after := ""
	for len(posts) < limit {
		pageSize := limit - len(posts)
		if pageSize > redditPageSize {
			pageSize = redditPageSize
		}

		listing, err := p.searchPage(ctx, query, pageSize, after)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		for _, row := range listing.Data.Children {
			data := row.Data
			id := strings.TrimSpace(data.ID)
			title := sanitizeText(data.Title, maxRedditTitleSize)
			if id == "" || title == "" || seen[id] {
				continue
			}
			seen[id] = true

			link := strings.TrimSpace(data.URL)
			if link == "" && data.Permalink != "" {
				link = strings.TrimRight(p.baseURL, "/") + data.Permalink
			}
			posts = append(posts, domain.Post{
				ID:      id,
				Title:   title,
				Score:   int(data.Score),
				Created: int64(data.CreatedUTC),
				URL:     link,
			})
			if len(posts) == limit {
				break
			}
		}

		after = listing.Data.After
		if after == "" || len(listing.Data.Children) == 0 {
			break
		}
	}

	span.SetAttributes(attribute.Int("reddit.results", len(posts)))
	return posts, nil
}

func (p *RedditProvider) searchPage(ctx context.Context, query string, size int, after string) (*redditListing, error) {
	if err := waitLimiter(ctx, p.limiter); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("restrict_sr", "1")
	q.Set("sort", p.sort)
	q.Set("limit", strconv.Itoa(size))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}

	base := strings.TrimRight(p.baseURL, "/")
	u := fmt.Sprintf("%s/r/%s/search.json?%s", base, url.PathEscape(p.subreddit), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reddit API error %d: %s", resp.StatusCode, string(body))
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}
	return &listing, nil
}

// sanitizeText collapses whitespace, replaces invalid UTF-8 and caps the
// result at maxLen characters.
func sanitizeText(in string, maxLen int) string {
	in = strings.ToValidUTF8(in, "\uFFFD")
	in = strings.Join(strings.Fields(in), " ")
	if in == "" {
		return ""
	}
	if maxLen > 0 && utf8.RuneCountInString(in) > maxLen {
		in = string([]rune(in)[:maxLen])
	}
	return in
}
