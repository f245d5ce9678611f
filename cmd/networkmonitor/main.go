// Command networkmonitor loads a transport topology and serves the
// Query Service and Event Feed over it.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/transitnet/network-monitor/internal/feed"
	"github.com/transitnet/network-monitor/internal/httpapi"
	"github.com/transitnet/network-monitor/internal/logging"
	"github.com/transitnet/network-monitor/network"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	logger := logging.New(os.Stdout, parseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("networkmonitor exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	topologyPath := os.Getenv("TOPOLOGY_FILE")
	if topologyPath == "" {
		return errors.New("TOPOLOGY_FILE is required")
	}

	doc, err := os.ReadFile(topologyPath)
	if err != nil {
		return fmt.Errorf("reading topology file %q: %w", topologyPath, err)
	}

	top := network.NewTopology()
	softOK, err := network.LoadFromTopology(top, doc)
	if err != nil {
		return fmt.Errorf("loading topology: %w", err)
	}
	logger.Info("topology loaded",
		slog.Int("stations", top.NumStations()),
		slog.Int("lines", top.NumLines()),
		slog.Int("routes", top.NumRoutes()),
		slog.Bool("travel_times_complete", softOK),
	)
	if !softOK {
		logger.Warn("topology loaded without a complete travel_times section; GetTravelTime queries may return 0")
	}

	srv := network.NewServer(top)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	origins := allowedOrigins(os.Getenv("ALLOWED_ORIGINS"))

	api := httpapi.NewServer(srv, logger)
	feedHandler := feed.NewHandler(srv, logger)

	r := chi.NewRouter()
	r.Mount("/", api.Router(origins))
	r.Handle("/feed/passengers", feedHandler)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("networkmonitor listening", slog.String("addr", addr))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func allowedOrigins(v string) []string {
	if v == "" {
		return []string{"*"}
	}
	return strings.Split(v, ",")
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
