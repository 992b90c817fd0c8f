package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nitesh/risk_dashboard/internal/classify"
	"github.com/nitesh/risk_dashboard/internal/providers"
	"github.com/nitesh/risk_dashboard/internal/service"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

type stubSources struct {
	weatherErr error
	fireErr    error
	reply      string
}

func (s *stubSources) CurrentWeather(context.Context, float64, float64) (*providers.CurrentWeather, error) {
	if s.weatherErr != nil {
		return nil, s.weatherErr
	}
	return &providers.CurrentWeather{Summary: "Cloudy", Temperature: 65, High: 70, Low: 55}, nil
}

func (s *stubSources) AlertReport(context.Context, float64, float64) (*providers.AlertReport, error) {
	return &providers.AlertReport{Conditions: classify.Conditions{Visibility: 10, Temperature: 65}}, nil
}

func (s *stubSources) AirPollution(context.Context, float64, float64) (*providers.AirSample, error) {
	return &providers.AirSample{AQI: 1, PM25: 5, O3: 40}, nil
}

func (s *stubSources) Activity(context.Context, float64, float64) (*providers.FireReport, error) {
	if s.fireErr != nil {
		return nil, s.fireErr
	}
	return &providers.FireReport{RiskLevel: 15}, nil
}

func (s *stubSources) PlaceName(context.Context, float64, float64) (string, error) {
	return "Springfield", nil
}

func (s *stubSources) Search(context.Context, string) ([]providers.Article, error) {
	return nil, nil
}

func (s *stubSources) Flow(context.Context, float64, float64) (*providers.TrafficFlow, error) {
	return &providers.TrafficFlow{CurrentSpeed: 50, FreeFlowSpeed: 50}, nil
}

func (s *stubSources) NearestCharger(context.Context, float64, float64) (*providers.ChargingStation, error) {
	return nil, nil
}

func (s *stubSources) Complete(context.Context, string, string) (string, error) {
	return s.reply, nil
}

func newTestRouter(stub *stubSources) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(service.Sources{
		Weather:  stub,
		Alerts:   stub,
		Air:      stub,
		Crime:    providers.SimulatedCrime{},
		Fire:     stub,
		Geocoder: stub,
		News:     stub,
		Traffic:  stub,
		LLM:      stub,
	}, service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewRouter(NewHandler(svc), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestDomainRoutesRequireCoordinates(t *testing.T) {
	r := newTestRouter(&stubSources{})
	paths := []string{
		"/api/location?lat=1", "/api/weather?lon=2", "/api/environment",
		"/api/safety?lat=a&lon=2", "/api/fire?lat=1&lon=", "/api/news",
		"/api/traffic", "/api/disaster-alerts", "/api/background",
	}
	for _, p := range paths {
		w := do(r, http.MethodGet, p, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", p, w.Code)
			continue
		}
		if got := errorBody(t, w); got != "Latitude and longitude parameters are required" {
			t.Errorf("%s: error = %q", p, got)
		}
	}
}

func TestDomainRoutesSucceed(t *testing.T) {
	r := newTestRouter(&stubSources{})
	for _, p := range []string{
		"/api/weather", "/api/environment", "/api/safety", "/api/fire",
		"/api/news", "/api/traffic", "/api/disaster-alerts",
	} {
		w := do(r, http.MethodGet, p+"?lat=40.74&lon=-74.03", "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d body = %s", p, w.Code, w.Body.String())
		}
	}
}

func TestLocationRoute(t *testing.T) {
	w := do(newTestRouter(&stubSources{}), http.MethodGet, "/api/location?lat=40.74&lon=-74.03", "")
	var got models.LocationInfo
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Hoboken, NJ" || got.Latitude != 40.74 || got.Longitude != -74.03 {
		t.Errorf("location = %+v", got)
	}
}

func TestBackgroundIsJSONString(t *testing.T) {
	w := do(newTestRouter(&stubSources{}), http.MethodGet, "/api/background?lat=1&lon=2", "")
	var url string
	if err := json.Unmarshal(w.Body.Bytes(), &url); err != nil {
		t.Fatalf("background should be a JSON string, got %s", w.Body.String())
	}
	if url != classify.BackgroundImage("Cloudy") {
		t.Errorf("url = %q", url)
	}
}

func TestFailClosedDomainReturns500(t *testing.T) {
	r := newTestRouter(&stubSources{fireErr: errors.New("boom"), weatherErr: providers.ErrMissingAPIKey})

	w := do(r, http.MethodGet, "/api/fire?lat=1&lon=2", "")
	if w.Code != http.StatusInternalServerError || errorBody(t, w) != "Failed to retrieve fire data" {
		t.Errorf("fire: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/api/weather?lat=1&lon=2", "")
	if w.Code != http.StatusInternalServerError || errorBody(t, w) != "Failed to retrieve weather data" {
		t.Errorf("weather: %d %s", w.Code, w.Body.String())
	}
	// background never fails
	w = do(r, http.MethodGet, "/api/background?lat=1&lon=2", "")
	if w.Code != http.StatusOK {
		t.Errorf("background: %d", w.Code)
	}
}

func TestChatValidation(t *testing.T) {
	r := newTestRouter(&stubSources{reply: "Quack"})
	cases := []struct {
		body string
		want string
	}{
		{`{"latitude": 1, "longitude": 2}`, "Message is required"},
		{`{"message": "", "latitude": 1, "longitude": 2}`, "Message is required"},
		{`{"message": "hi", "latitude": 1}`, "Location coordinates are required"},
		{`{"message": "hi"}`, "Location coordinates are required"},
		{`not json`, "Message is required"},
	}
	for _, c := range cases {
		w := do(r, http.MethodPost, "/api/chat", c.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", c.body, w.Code)
			continue
		}
		if got := errorBody(t, w); got != c.want {
			t.Errorf("%s: error = %q, want %q", c.body, got, c.want)
		}
	}
}

func TestChatReplies(t *testing.T) {
	r := newTestRouter(&stubSources{reply: "Quack, looks cloudy."})
	w := do(r, http.MethodPost, "/api/chat", `{"message": "weather?", "latitude": 0, "longitude": 0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var got models.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Message != "Quack, looks cloudy." {
		t.Errorf("message = %q", got.Message)
	}
}

func TestChatApologyStill200(t *testing.T) {
	r := newTestRouter(&stubSources{fireErr: errors.New("boom")})
	w := do(r, http.MethodPost, "/api/chat", `{"message": "hi", "latitude": 1, "longitude": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "I'm sorry") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(&stubSources{})
	w := do(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Errorf("health: %d id=%q", w.Code, w.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}
