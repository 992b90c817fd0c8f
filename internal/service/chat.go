package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nitesh/risk_dashboard/pkg/models"
)

const (
	chatApology  = "I'm sorry, I encountered an error while processing your request. Please try asking again in a slightly different way."
	chatFallback = "Quack! I seem to be having trouble responding right now. Could you try again?"
)

// Snapshot is every domain record for one location.
type Snapshot struct {
	Location    models.LocationInfo
	Weather     *models.WeatherRecord
	Environment *models.EnvironmentRecord
	Safety      *models.SafetyRecord
	Fire        *models.FireRecord
	Traffic     *models.TrafficRecord
	Disasters   *models.DisasterAlertRecord
	News        *models.NewsRecord
}

// Snapshot fetches all seven domains concurrently and waits for every one to
// settle. The first fail-closed error is returned.
func (s *Service) Snapshot(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	snap := &Snapshot{Location: s.Location(lat, lon)}

	var g errgroup.Group
	g.Go(func() (err error) {
		snap.Weather, err = s.Weather(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.Environment, err = s.Environment(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.Safety, err = s.Safety(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.Fire, err = s.Fire(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.Traffic, err = s.Traffic(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.Disasters, err = s.DisasterAlerts(ctx, lat, lon)
		return err
	})
	g.Go(func() (err error) {
		snap.News, err = s.News(ctx, lat, lon)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Chat answers a question about the location. It always returns a message:
// failures become a canned apology.
func (s *Service) Chat(ctx context.Context, message string, lat, lon float64) string {
	snap, err := s.Snapshot(ctx, lat, lon)
	if err != nil {
		s.log.Error("chat context failed", "err", err)
		return chatApology
	}

	reply, err := s.src.LLM.Complete(ctx, buildPrompt(snap), message)
	if err != nil {
		s.log.Error("chat completion failed", "err", err)
		return chatApology
	}
	if strings.TrimSpace(reply) == "" {
		return chatFallback
	}
	return reply
}

func buildPrompt(snap *Snapshot) string {
	w, e, sf, f, t, d := snap.Weather, snap.Environment, snap.Safety, snap.Fire, snap.Traffic, snap.Disasters
	loc := snap.Location

	var b strings.Builder
	fmt.Fprintf(&b, "You are Attila, a duck assistant who coordinates a team of specialized experts to provide helpful, accurate information about location-based risks and conditions.\n\n")
	fmt.Fprintf(&b, "You have a team of experts who have provided you with the following real-time data for %s (lat: %v, long: %v):\n\n", loc.Name, loc.Latitude, loc.Longitude)

	fmt.Fprintf(&b, "FROM THE WEATHER & OUTFIT EXPERT:\n")
	fmt.Fprintf(&b, "- Current temp: %d°F (feels like %d°F)\n", w.Temperature, w.FeelsLike)
	fmt.Fprintf(&b, "- Conditions: %s\n", w.Conditions)
	fmt.Fprintf(&b, "- High/Low: %d°F/%d°F\n", w.High, w.Low)
	fmt.Fprintf(&b, "- Outfit suggestion: %s\n", w.OutfitSuggestion)
	if len(w.ItemsToCarry) > 0 {
		fmt.Fprintf(&b, "- Bring: %s\n", strings.Join(w.ItemsToCarry, ", "))
	}
	fmt.Fprintf(&b, "- Humidity: %d%%, Wind: %dmph, UV Index: %d\n\n", w.Humidity, w.Wind, w.UVIndex)

	fmt.Fprintf(&b, "FROM THE ENVIRONMENTAL RISK ANALYST:\n")
	fmt.Fprintf(&b, "- Air Quality: %s (AQI: %d)\n", e.AirQualityText, e.AirQualityIndex)
	fmt.Fprintf(&b, "- PM2.5: %s (%.0f%% of safe level)\n", e.PM25, e.PM25Percentage)
	fmt.Fprintf(&b, "- Ozone: %s (%.0f%% of safe level)\n", e.Ozone, e.OzonePercentage)
	fmt.Fprintf(&b, "- Health recommendation: %s\n\n", e.Recommendation)

	fmt.Fprintf(&b, "FROM THE SAFETY & CRIME ANALYST:\n")
	fmt.Fprintf(&b, "- Current level: %s\n", sf.LevelText)
	fmt.Fprintf(&b, "- Recent incidents: %s\n", sf.RecentIncidents)
	fmt.Fprintf(&b, "- Most common incident: %s\n", sf.MostCommon)
	fmt.Fprintf(&b, "- Safety tip: %s\n\n", sf.Tips)

	fmt.Fprintf(&b, "FROM THE FIRE RISK EXPERT:\n")
	fmt.Fprintf(&b, "- Status: %s\n", f.StatusText)
	fmt.Fprintf(&b, "- Risk level: %s (%d%% risk)\n", f.RiskLevel, f.RiskPercentage)
	fmt.Fprintf(&b, "- Nearest fire station: %s\n\n", f.NearestStation)

	fmt.Fprintf(&b, "FROM THE TRAFFIC & COMMUTE ADVISOR:\n")
	fmt.Fprintf(&b, "- Current conditions: %s\n", t.StatusText)
	fmt.Fprintf(&b, "- Commute time: %s\n", t.CommuteTime)
	fmt.Fprintf(&b, "- Incidents: %s\n", orDefault(t.Incident, "None reported"))
	fmt.Fprintf(&b, "- Public transit: %s\n", orDefault(t.PublicTransit, "No transit notes"))
	fmt.Fprintf(&b, "- Best travel time: %s\n", t.BestTime)
	fmt.Fprintf(&b, "- EV charging: %s\n\n", t.EVCharging)

	fmt.Fprintf(&b, "FROM THE DISASTER ALERT MONITOR:\n")
	fmt.Fprintf(&b, "- Status: %s\n", d.StatusText)
	for _, a := range d.Alerts {
		fmt.Fprintf(&b, "- %s (%s, expires %s): %s\n", a.Title, a.Type, a.Expires, a.Description)
	}
	fmt.Fprintf(&b, "- Recommendation: %s\n\n", d.Recommendations)

	fmt.Fprintf(&b, "FROM THE LOCAL NEWS REPORTER:\n")
	b.WriteString(newsContext(snap.News))
	b.WriteString("\n\n")

	b.WriteString("Your responses should be friendly, concise, and occasionally include subtle duck-related puns or phrases when appropriate.\n")
	b.WriteString("Answer the user's questions by drawing from the relevant expert data above. Only include information that's relevant to the user's query.\n")
	b.WriteString("Speak casually as if you're a friendly duck who happens to coordinate a team of experts about the area.\n")
	b.WriteString(`Don't mention "API", "data", or "experts" in your answer - instead, present the information as if you gathered it yourself.`)
	b.WriteString("\n")
	return b.String()
}

func newsContext(news *models.NewsRecord) string {
	if news == nil || len(news.Items) == 0 {
		return "Recent local news: No significant local news at this time."
	}
	var b strings.Builder
	b.WriteString("Recent local news: ")
	for i, it := range news.Items {
		fmt.Fprintf(&b, "%d) %s - %s (%s). ", i+1, it.Title, it.Description, it.Location)
	}
	return strings.TrimSpace(b.String())
}

func orDefault(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
