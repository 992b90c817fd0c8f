package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/nitesh/risk_dashboard/internal/api"
	"github.com/nitesh/risk_dashboard/internal/config"
	"github.com/nitesh/risk_dashboard/internal/llm"
	"github.com/nitesh/risk_dashboard/internal/metrics"
	"github.com/nitesh/risk_dashboard/internal/providers"
	"github.com/nitesh/risk_dashboard/internal/service"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	svc    *service.Service
	named  []namedSource
)

// namedSource is anything the providers command can report on.
type namedSource struct {
	concern string
	src     interface {
		Name() string
		IsAvailable() bool
	}
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger = newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	svc, err = buildService(cfg)
	if err != nil {
		logger.Error("service setup failed", "err", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "risk-dashboard",
		Short: "Location risk dashboard",
		Long:  "Fetches weather, air quality, safety, fire, traffic, alert and news data for a location",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			startServer()
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [domain]",
		Short: "Fetch one domain record for a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")
			output, _ := cmd.Flags().GetString("output")
			return getDomainCLI(args[0], lat, lon, output)
		},
	}
	getCmd.Flags().Float64("lat", 40.7439, "Latitude")
	getCmd.Flags().Float64("lon", -74.0323, "Longitude")
	getCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")

	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the assistant about a location",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			fmt.Println(svc.Chat(ctx, strings.Join(args, " "), lat, lon))
		},
	}
	chatCmd.Flags().Float64("lat", 40.7439, "Latitude")
	chatCmd.Flags().Float64("lon", -74.0323, "Longitude")

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "Show configured data sources",
		Run: func(cmd *cobra.Command, args []string) {
			showProviders()
		},
	}

	rootCmd.AddCommand(serveCmd, getCmd, chatCmd, providersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

func buildService(cfg *config.Config) (*service.Service, error) {
	deps := providers.Deps{
		Client:  &http.Client{Timeout: cfg.ProviderTimeout},
		Limiter: newLimiter(cfg),
	}

	var (
		weather service.WeatherSource
		alerts  service.AlertSource
	)
	switch cfg.WeatherSource {
	case config.WeatherNWS:
		p := providers.NewNWSProvider(cfg.NWSUserAgent, deps)
		weather, alerts = p, p
		named = append(named, namedSource{"weather", p})
	default:
		p := providers.NewPirateWeatherProvider(cfg.PirateWeatherAPIKey, deps)
		weather, alerts = p, p
		named = append(named, namedSource{"weather", p})
	}

	air := providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, deps)
	named = append(named, namedSource{"environment", air})

	var crime service.CrimeSource = providers.SimulatedCrime{}
	named = append(named, namedSource{"safety", providers.SimulatedCrime{}})
	if cfg.SafetySource == config.SourceLive {
		p := providers.NewCrimeometerProvider(cfg.CrimeAPIKey, deps)
		crime = p
		named[len(named)-1].src = p
	}

	var fire service.FireSource = providers.SimulatedFire{}
	named = append(named, namedSource{"fire", providers.SimulatedFire{}})
	if cfg.FireSource == config.SourceLive {
		p := providers.NewEmergencyReportingProvider(cfg.FireAPIKey, deps)
		fire = p
		named[len(named)-1].src = p
	}

	geo := providers.NewNominatimProvider(cfg.NominatimUserAgent, deps)
	named = append(named, namedSource{"geocoding", geo})

	var news service.NewsSearcher
	if cfg.NewsSource == config.NewsRSS {
		p := providers.NewRSSNewsProvider(deps)
		news = p
		named = append(named, namedSource{"news", p})
	} else {
		p := providers.NewNewsAPIProvider(cfg.NewsAPIKey, deps)
		news = p
		named = append(named, namedSource{"news", p})
	}

	traffic := providers.NewTomTomProvider(cfg.TomTomAPIKey, deps)
	named = append(named, namedSource{"traffic", traffic})

	chat := llm.NewClient(cfg.LLMURL, cfg.LLMModel, cfg.OpenAIAPIKey, nil)
	chat.SetLogger(func(format string, v ...any) {
		logger.Debug(fmt.Sprintf(format, v...), "component", "llm")
	})

	failClosed, err := service.ParseDomains(cfg.FailClosedDomains)
	if err != nil {
		return nil, fmt.Errorf("FAIL_CLOSED_DOMAINS: %w", err)
	}

	return service.NewService(service.Sources{
		Weather:  weather,
		Alerts:   alerts,
		Air:      air,
		Crime:    crime,
		Fire:     fire,
		Geocoder: geo,
		News:     news,
		Traffic:  traffic,
		LLM:      chat,
	}, service.WithFailClosed(failClosed...), service.WithLogger(logger)), nil
}

func newLimiter(cfg *config.Config) providers.Limiter {
	if cfg.RedisAddr == "" || cfg.ProviderQuotaPerMinute <= 0 {
		return providers.NoLimit{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed, quota checks will fail open", "addr", cfg.RedisAddr, "err", err)
	}
	return providers.NewRedisQuota(rdb, cfg.ProviderQuotaPerMinute)
}

func startServer() {
	metrics.Register()
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(svc), logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func getDomainCLI(name string, lat, lon float64, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		rec any
		err error
	)
	switch strings.ToLower(name) {
	case "location":
		rec = svc.Location(lat, lon)
	case "background":
		rec = svc.Background(ctx, lat, lon)
	case "weather":
		rec, err = svc.Weather(ctx, lat, lon)
	case "environment":
		rec, err = svc.Environment(ctx, lat, lon)
	case "safety":
		rec, err = svc.Safety(ctx, lat, lon)
	case "fire":
		rec, err = svc.Fire(ctx, lat, lon)
	case "news":
		rec, err = svc.News(ctx, lat, lon)
	case "traffic":
		rec, err = svc.Traffic(ctx, lat, lon)
	case "disasters", "disaster-alerts":
		rec, err = svc.DisasterAlerts(ctx, lat, lon)
	default:
		return fmt.Errorf("unknown domain %q", name)
	}
	if err != nil {
		var de *service.DomainError
		if errors.As(err, &de) {
			return fmt.Errorf("%s: %w", de.Message(), de.Err)
		}
		return err
	}

	return writeRecord(os.Stdout, name, svc.Location(lat, lon).Name, rec, output)
}

// writeRecord prints rec as indented JSON or as sorted key/value lines.
func writeRecord(w io.Writer, name, place string, rec any, output string) error {
	if output == "json" {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		// background and other scalar records
		fmt.Fprintf(w, "%s: %v\n", name, rec)
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "%s (%s)\n", strings.ToUpper(name), place)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, k := range keys {
		fmt.Fprintf(w, "%-18s %v\n", k+":", fields[k])
	}
	return nil
}

func showProviders() {
	fmt.Println("Configured data sources:")
	fmt.Println(strings.Repeat("-", 30))
	for _, n := range named {
		mark := "✓"
		note := ""
		if !n.src.IsAvailable() {
			mark, note = "✗", " (no API key)"
		}
		fmt.Printf("%s %-12s %s%s\n", mark, n.concern, n.src.Name(), note)
	}
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("✗ chat         LLM (no API key)")
	} else {
		fmt.Println("✓ chat         LLM")
	}
}
