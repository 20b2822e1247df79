// Command lomo-proxy exposes the Lomography client as a small HTTP proxy.
// Requests to /lomo/<endpoint> are forwarded to the API through the shared
// cache and request budget, so many local consumers share one API key and
// one budget.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lomoapi/lomography-go/pkg/client"
	"github.com/lomoapi/lomography-go/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	}).With().Str("component", "lomo-proxy").Logger()

	apiKey := os.Getenv("LOMOGRAPHY_API_KEY")
	if apiKey == "" {
		logger.Fatal().Msg("LOMOGRAPHY_API_KEY is required")
	}

	port := getEnv("PORT", "8080")
	userAgent := getEnv("USER_AGENT", "lomography-go/0.1.0")

	cfg := client.DefaultConfig(apiKey)
	cfg.UserAgent = userAgent

	// Redis is optional: without it the proxy still works, just without the
	// shared cache and request budget.
	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: redisURL})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to connect to Redis")
		}
		logger.Info().Str("redis_url", redisURL).Msg("Connected to Redis")
		cfg.Redis = redisClient
	}

	lomoClient, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Lomography client")
	}
	defer lomoClient.Close()

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/ready", readyHandler(redisClient))
	http.HandleFunc("/lomo/", lomoProxyHandler(lomoClient, logger))
	http.Handle("/metrics", promhttp.Handler())

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("user_agent", userAgent).
		Bool("redis", redisClient != nil).
		Msg("Starting Lomography proxy server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// readyHandler reports readiness. With Redis configured it checks the
// connection; without Redis the proxy is always ready.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				http.Error(w, fmt.Sprintf("Redis unavailable: %v", err), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}

// lomoProxyHandler forwards /lomo/<endpoint> to the API.
// Example: /lomo/photos/popular?page=2 -> /photos/popular?page=2
func lomoProxyHandler(lomoClient *client.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path[len("/lomo"):]

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		resp, err := lomoClient.Get(ctx, endpoint, r.URL.Query())
		if err != nil {
			http.Error(w, fmt.Sprintf("upstream request failed: %v", err), http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		for key, values := range resp.Header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}
		w.WriteHeader(resp.StatusCode)

		if _, err := io.Copy(w, resp.Body); err != nil {
			logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to write response body")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
