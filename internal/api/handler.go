package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nitesh/risk_dashboard/internal/service"
	"github.com/nitesh/risk_dashboard/pkg/models"
)

const (
	errCoordsRequired  = "Latitude and longitude parameters are required"
	errMessageRequired = "Message is required"
	errChatCoords      = "Location coordinates are required"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/location", h.Location)
		api.GET("/weather", domain(h.svc.Weather))
		api.GET("/environment", domain(h.svc.Environment))
		api.GET("/safety", domain(h.svc.Safety))
		api.GET("/fire", domain(h.svc.Fire))
		api.GET("/news", domain(h.svc.News))
		api.GET("/traffic", domain(h.svc.Traffic))
		api.GET("/disaster-alerts", domain(h.svc.DisasterAlerts))
		api.GET("/background", h.Background)
		api.POST("/chat", h.Chat)
	}
}

// domain adapts a fetcher to a GET handler over ?lat=&lon=.
func domain[T any](fetch func(ctx context.Context, lat, lon float64) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lon, ok := parseCoords(c)
		if !ok {
			return
		}
		rec, err := fetch(c.Request.Context(), lat, lon)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// Location: GET /api/location?lat=40.74&lon=-74.03
func (h *Handler) Location(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Location(lat, lon))
}

// Background: GET /api/background?lat=..&lon=..
// Responds with a bare JSON string holding the image URL.
func (h *Handler) Background(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Background(c.Request.Context(), lat, lon))
}

// Chat: POST /api/chat
// Body: {"message": "...", "latitude": 40.74, "longitude": -74.03}
func (h *Handler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": chatBindError(err)})
		return
	}
	reply := h.svc.Chat(c.Request.Context(), req.Message, *req.Latitude, *req.Longitude)
	c.JSON(http.StatusOK, models.ChatResponse{Message: reply})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// chatBindError names the first missing field. A body that is not JSON at all
// carries no message either.
func chatBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errMessageRequired
	}
	for _, fe := range verrs {
		if fe.Field() == "Message" {
			return errMessageRequired
		}
	}
	return errChatCoords
}

// parseCoords reads lat and lon from the query and writes the 400 itself when
// either is missing or not a number.
func parseCoords(c *gin.Context) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errCoordsRequired})
		return 0, 0, false
	}
	return lat, lon, true
}

func writeError(c *gin.Context, err error) {
	var de *service.DomainError
	if errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": de.Message()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
