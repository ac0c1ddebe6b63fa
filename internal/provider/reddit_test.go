package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestReddit(rt roundTripFunc) *RedditProvider {
	p := NewRedditProvider(trace.NewNoopTracerProvider().Tracer("test"), nil, RedditOptions{})
	p.baseURL = "https://example.com"
	p.limiter = nil
	p.client = &http.Client{Transport: rt}
	return p
}

func TestRedditFetchPosts(t *testing.T) {
	p := newTestReddit(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/r/wallstreetbets/search.json" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("q") != "TSLA" || q.Get("restrict_sr") != "1" || q.Get("sort") != "new" {
			t.Fatalf("unexpected query: %s", req.URL.RawQuery)
		}
		if req.Header.Get("User-Agent") == "" {
			t.Fatalf("expected user-agent header")
		}
		body := `{"data":{"after":"","children":[
			{"data":{"id":"abc123","title":"TSLA  to the\nmoon","score":42,"created_utc":1741942800,"permalink":"/r/wallstreetbets/comments/abc123/post","url":"https://i.redd.it/x.png"}},
			{"data":{"id":"def456","title":"puts on tsla","score":3,"created_utc":1741946400,"permalink":"/r/wallstreetbets/comments/def456/post","url":""}},
			{"data":{"id":"","title":"no id","score":1,"created_utc":1741946400}}
		]}}`
		return jsonResponse(http.StatusOK, body), nil
	})

	posts, err := p.FetchPosts(context.Background(), "TSLA", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "abc123" || posts[0].Title != "TSLA to the moon" || posts[0].Score != 42 || posts[0].Created != 1741942800 {
		t.Fatalf("unexpected first post: %+v", posts[0])
	}
	if posts[0].URL != "https://i.redd.it/x.png" {
		t.Fatalf("expected submission url, got %s", posts[0].URL)
	}
	if posts[1].URL != "https://example.com/r/wallstreetbets/comments/def456/post" {
		t.Fatalf("expected permalink fallback, got %s", posts[1].URL)
	}
}

func TestRedditFetchPostsKeepsMultibyteTitles(t *testing.T) {
	accented := "a" + strings.Repeat("é", 200)
	long := strings.Repeat("🚀", 310)
	p := newTestReddit(func(req *http.Request) (*http.Response, error) {
		body := fmt.Sprintf(`{"data":{"after":"","children":[
			{"data":{"id":"a1","title":%q,"score":1,"created_utc":1741942800}},
			{"data":{"id":"a2","title":%q,"score":1,"created_utc":1741942800}}
		]}}`, accented, long)
		return jsonResponse(http.StatusOK, body), nil
	})

	posts, err := p.FetchPosts(context.Background(), "TSLA", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != accented {
		t.Fatalf("title altered: got %d runes, want %d", utf8.RuneCountInString(posts[0].Title), utf8.RuneCountInString(accented))
	}
	if !utf8.ValidString(posts[1].Title) || utf8.RuneCountInString(posts[1].Title) != maxRedditTitleSize {
		t.Fatalf("expected %d valid runes, got valid=%v runes=%d",
			maxRedditTitleSize, utf8.ValidString(posts[1].Title), utf8.RuneCountInString(posts[1].Title))
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"  a \n b\t c ", 0, "a b c"},
		{"héllo wörld", 7, "héllo w"},
		{"ok\xffbad", 0, "ok\uFFFDbad"},
		{"   ", 10, ""},
	}
	for _, tt := range tests {
		if got := sanitizeText(tt.in, tt.max); got != tt.want {
			t.Errorf("sanitizeText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRedditFetchPostsPaginates(t *testing.T) {
	calls := 0
	p := newTestReddit(func(req *http.Request) (*http.Response, error) {
		calls++
		q := req.URL.Query()
		var b strings.Builder
		b.WriteString(`{"data":{"after":`)
		switch q.Get("after") {
		case "":
			if q.Get("limit") != "100" {
				t.Fatalf("expected first page of 100, got %s", q.Get("limit"))
			}
			b.WriteString(`"t3_page2","children":[`)
			writeChildren(&b, 0, 100)
		case "t3_page2":
			if q.Get("limit") != "50" {
				t.Fatalf("expected second page of 50, got %s", q.Get("limit"))
			}
			b.WriteString(`"t3_page3","children":[`)
			writeChildren(&b, 95, 60)
		default:
			t.Fatalf("unexpected cursor %s", q.Get("after"))
		}
		b.WriteString(`]}}`)
		return jsonResponse(http.StatusOK, b.String()), nil
	})

	posts, err := p.FetchPosts(context.Background(), "GME", 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 150 {
		t.Fatalf("expected 150 posts, got %d", len(posts))
	}
	if calls != 2 {
		t.Fatalf("expected 2 requests, got %d", calls)
	}
	seen := map[string]bool{}
	for _, post := range posts {
		if seen[post.ID] {
			t.Fatalf("duplicate post %s", post.ID)
		}
		seen[post.ID] = true
	}
}

func TestRedditFetchPostsStopsWhenExhausted(t *testing.T) {
	calls := 0
	p := newTestReddit(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"data":{"after":null,"children":[{"data":{"id":"a","title":"only one","created_utc":1}}]}}`), nil
	})

	posts, err := p.FetchPosts(context.Background(), "AMC", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || calls != 1 {
		t.Fatalf("expected a single page with one post, got %d posts in %d calls", len(posts), calls)
	}
}

func TestRedditFetchPostsErrors(t *testing.T) {
	p := newTestReddit(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"message":"Too Many Requests"}`), nil
	})
	if _, err := p.FetchPosts(context.Background(), "TSLA", 10); err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}

	p = newTestReddit(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not json`), nil
	})
	if _, err := p.FetchPosts(context.Background(), "TSLA", 10); err == nil {
		t.Fatal("expected decode error")
	}

	if _, err := p.FetchPosts(context.Background(), "  ", 10); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func writeChildren(b *strings.Builder, from, n int) {
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, `{"data":{"id":"p%d","title":"post %d","score":%d,"created_utc":%d}}`, from+i, from+i, i, 1741942800+from+i)
	}
}
