package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lomoapi/lomography-go/internal/testutil"
	"github.com/lomoapi/lomography-go/pkg/client"
)

func newProxyClient(t *testing.T, mock *testutil.MockLomo) *client.Client {
	t.Helper()

	cfg := client.DefaultConfig("test-key")
	cfg.BaseURL = mock.URL()
	cfg.Retry = client.RetryConfig{
		MaxAttempts:       1,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 1.0,
	}

	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestReadyEndpoint_NoRedis(t *testing.T) {
	handler := readyHandler(nil)

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestLomoProxyHandler(t *testing.T) {
	mock := testutil.NewMockLomo()
	defer mock.Close()
	mock.SetResponse("/cameras/42", testutil.NewHealthyResponse(`{"id": 42, "name": "Diana F+"}`))

	lomoClient := newProxyClient(t, mock)
	defer lomoClient.Close()

	handler := lomoProxyHandler(lomoClient, zerolog.Nop())

	t.Run("forwards_endpoint_and_body", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/lomo/cameras/42", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var camera struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &camera); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if camera.ID != 42 || camera.Name != "Diana F+" {
			t.Errorf("Unexpected camera: %+v", camera)
		}

		// The proxy must attach the API key for the upstream.
		if mock.LastAPIKey != "test-key" {
			t.Errorf("Expected api_key 'test-key', got %q", mock.LastAPIKey)
		}
	})

	t.Run("forwards_query_params", func(t *testing.T) {
		mock.SetPhotosDataset("/photos/popular", testutil.PaginatedDataset{TotalEntries: 45})

		req := httptest.NewRequest("GET", "/lomo/photos/popular?page=2", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		pages := mock.GetPagesRequested("/photos/popular")
		if len(pages) != 1 || pages[0] != 2 {
			t.Errorf("Expected page 2 to be requested, got %v", pages)
		}
	})

	t.Run("upstream_unreachable", func(t *testing.T) {
		dead := testutil.NewMockLomo()
		deadClient := newProxyClient(t, dead)
		dead.Close()
		defer deadClient.Close()

		deadHandler := lomoProxyHandler(deadClient, zerolog.Nop())

		req := httptest.NewRequest("GET", "/lomo/photos/recent", nil)
		w := httptest.NewRecorder()

		deadHandler(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", resp.StatusCode)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	mock := testutil.NewMockLomo()
	defer mock.Close()

	// Creating a client registers all metrics.
	lomoClient := newProxyClient(t, mock)
	defer lomoClient.Close()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	promhttp.Handler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
}
