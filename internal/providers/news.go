package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Article is one search hit from any news source.
type Article struct {
	Title       string
	Description string
	SourceName  string
	PublishedAt time.Time
}

// NewsAPIProvider runs full-text searches against NewsAPI /v2/everything,
// newest first, English only.
type NewsAPIProvider struct {
	base
	apiKey string
}

func NewNewsAPIProvider(apiKey string, deps Deps) *NewsAPIProvider {
	return &NewsAPIProvider{
		base:   deps.base("NewsAPI", "https://newsapi.org/v2/everything"),
		apiKey: apiKey,
	}
}

type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (n *NewsAPIProvider) IsAvailable() bool { return n.apiKey != "" }

func (n *NewsAPIProvider) Search(ctx context.Context, query string) ([]Article, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", n.Name(), ErrMissingAPIKey)
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	q.Set("apiKey", n.apiKey)

	var resp newsAPIResponse
	if err := n.getJSON(ctx, n.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("%s: status %q: %s", n.Name(), resp.Status, resp.Message)
	}

	out := make([]Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		out = append(out, Article{
			Title:       a.Title,
			Description: a.Description,
			SourceName:  a.Source.Name,
			PublishedAt: published,
		})
	}
	return out, nil
}

// RSSNewsProvider searches the Google News RSS feed. It needs no key.
type RSSNewsProvider struct {
	base
	parser *gofeed.Parser
}

func NewRSSNewsProvider(deps Deps) *RSSNewsProvider {
	return &RSSNewsProvider{
		base:   deps.base("GoogleNewsRSS", "https://news.google.com/rss/search"),
		parser: gofeed.NewParser(),
	}
}

func (r *RSSNewsProvider) IsAvailable() bool { return true }

func (r *RSSNewsProvider) Search(ctx context.Context, query string) ([]Article, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	h := http.Header{}
	h.Set("Accept", "application/rss+xml")
	body, err := r.get(ctx, r.baseURL+"?"+q.Encode(), h)
	if err != nil {
		return nil, err
	}
	feed, err := r.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("%s: parse feed: %w", r.Name(), err)
	}

	out := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		title, source := splitHeadline(item.Title)
		a := Article{
			Title:       title,
			Description: htmlText(item.Description),
			SourceName:  source,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		out = append(out, a)
	}
	return out, nil
}

// splitHeadline separates Google News "Headline - Publisher" titles.
func splitHeadline(title string) (string, string) {
	i := strings.LastIndex(title, " - ")
	if i <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
}

// htmlText renders an HTML fragment as plain text with entities decoded and
// whitespace collapsed.
func htmlText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
