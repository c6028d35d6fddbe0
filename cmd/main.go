package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/KenanY/teemo-core/internal"
	"github.com/KenanY/teemo-core/teemo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := internal.NewLogger(cfg)
	metrics := internal.NewMetricsCollector(logger)
	middleware := internal.NewLoggingMiddleware(logger, metrics)
	rateLimiter := internal.NewRateLimiter(cfg, logger)

	profiler := internal.NewProfiler(logger)
	profiler.StartMemoryProfiling()
	profiler.StartPeriodicMemoryLogging()

	opts := []teemo.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, teemo.WithBaseURL(cfg.BaseURL))
	}
	client, err := teemo.New(cfg.Contact, opts...)
	if err != nil {
		log.Fatalf("Error building API client: %v", err)
	}

	db := internal.NewDatabaseManager(cfg, logger)
	defer db.Close()

	var audit internal.LookupRecorder
	if cfg.AuditEnabled {
		natsClient, err := internal.NewNATSClient(cfg, logger)
		if err != nil {
			log.Fatalf("Error connecting to NATS: %v", err)
		}
		defer natsClient.Conn.Close()

		if _, err := natsClient.StartAuditWorker(db); err != nil {
			log.Fatalf("Error starting audit worker: %v", err)
		}
		audit = natsClient
	}

	http.HandleFunc("/healthz", middleware.Handler(internal.HealthHandler(logger)))
	http.HandleFunc("/metrics", middleware.Handler(internal.MetricsHandler(logger, metrics)))
	http.HandleFunc("/stats", middleware.Handler(internal.StatsHandler(db, logger)))
	http.HandleFunc("/player", middleware.Handler(internal.PlayerHandler(client, rateLimiter, audit, logger, metrics)))
	http.HandleFunc("/team", middleware.Handler(internal.TeamHandler(client, rateLimiter, audit, logger, metrics)))
	http.HandleFunc("/team/leagues", middleware.Handler(internal.TeamLeaguesHandler(client, rateLimiter, audit, logger, metrics)))
	http.HandleFunc("/free-week", middleware.Handler(internal.FreeWeekHandler(client, rateLimiter, audit, logger, metrics)))

	log.Printf("Server started on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
