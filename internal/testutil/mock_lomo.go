// Package testutil provides testing utilities for the Lomography client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockLomo is a configurable mock Lomography API server for testing.
type MockLomo struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	ConditionalCount  int
	PagesRequested    map[string][]int
	LastRequestHeader http.Header
	LastAPIKey        string
}

// NewMockLomo creates a new mock API server.
func NewMockLomo() *MockLomo {
	mock := &MockLomo{
		handlers:       make(map[string]func(w http.ResponseWriter, r *http.Request)),
		PagesRequested: make(map[string][]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.LastAPIKey = r.URL.Query().Get("api_key")
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.ConditionalCount++
		}
		page := pageOf(r)
		mock.PagesRequested[r.URL.Path] = append(mock.PagesRequested[r.URL.Path], page)
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockLomo) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockLomo) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockLomo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.ConditionalCount = 0
	m.PagesRequested = make(map[string][]int)
	m.LastRequestHeader = nil
	m.LastAPIKey = ""
}

// SetHandler sets a custom handler for a specific path.
func (m *MockLomo) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path, regardless of page.
func (m *MockLomo) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// PaginatedDataset describes a synthetic paginated collection served by
// SetPhotosDataset and friends. Items are generated on the fly so tests
// only declare sizes, not fixtures.
type PaginatedDataset struct {
	TotalEntries int
	PerPage      int

	// PageDelays maps a page number to an artificial response delay,
	// letting tests force out-of-order completion.
	PageDelays map[int]time.Duration

	// FailPage, when non-zero, makes that page respond with a 500.
	FailPage int
}

func (d PaginatedDataset) perPage() int {
	if d.PerPage > 0 {
		return d.PerPage
	}
	return 20
}

// itemsOn returns the inclusive zero-based item range on a 1-based page,
// or ok=false when the page is past the end of the data.
func (d PaginatedDataset) itemsOn(page int) (first, last int, ok bool) {
	first = (page - 1) * d.perPage()
	if first >= d.TotalEntries {
		return 0, 0, false
	}
	last = first + d.perPage() - 1
	if last >= d.TotalEntries {
		last = d.TotalEntries - 1
	}
	return first, last, true
}

func (d PaginatedDataset) serve(m *MockLomo, path, collection string, item func(i int) map[string]any) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page := pageOf(r)

		if delay, ok := d.PageDelays[page]; ok {
			time.Sleep(delay)
		}
		if d.FailPage != 0 && page == d.FailPage {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal server error"}`))
			return
		}

		items := []map[string]any{}
		if first, last, ok := d.itemsOn(page); ok {
			for i := first; i <= last; i++ {
				items = append(items, item(i))
			}
		}

		body := map[string]any{
			"meta": map[string]any{
				"total_entries": d.TotalEntries,
				"per_page":      d.perPage(),
				"page":          page,
			},
			collection: items,
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	})
}

// SetPhotosDataset serves a synthetic photo collection at path. Photo IDs
// equal their zero-based position in the collection, so tests can check
// exactly which slice of the data a call returned.
func (m *MockLomo) SetPhotosDataset(path string, d PaginatedDataset) {
	d.serve(m, path, "photos", func(i int) map[string]any {
		return map[string]any{
			"id":    i,
			"title": fmt.Sprintf("Photo %d", i),
			"url":   fmt.Sprintf("http://www.lomography.com/photos/%d", i),
			"assets": map[string]any{
				"small": map[string]any{"url": "http://cdn.test/s.jpg", "width": 96, "height": 72, "ratio": 1.33, "filename": "s.jpg"},
				"large": map[string]any{"url": "http://cdn.test/l.jpg", "width": 576, "height": 432, "ratio": 1.33, "filename": "l.jpg"},
			},
			"user": map[string]any{"username": "tester", "url": "http://www.lomography.com/homes/tester"},
			"tags": []any{},
		}
	})
}

// SetCamerasDataset serves a synthetic camera collection at path.
func (m *MockLomo) SetCamerasDataset(path string, d PaginatedDataset) {
	d.serve(m, path, "cameras", func(i int) map[string]any {
		return map[string]any{"id": i, "name": fmt.Sprintf("Camera %d", i)}
	})
}

// SetFilmsDataset serves a synthetic film collection at path.
func (m *MockLomo) SetFilmsDataset(path string, d PaginatedDataset) {
	d.serve(m, path, "films", func(i int) map[string]any {
		return map[string]any{"id": i, "name": fmt.Sprintf("Film %d", i)}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockLomo) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockLomo) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ConditionalCount
}

// GetPagesRequested returns the page numbers requested for a path, in
// arrival order.
func (m *MockLomo) GetPagesRequested(path string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.PagesRequested[path]...)
}

// defaultHandler answers unconfigured paths with an empty OK body.
func (m *MockLomo) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.Header.Get("If-None-Match") != "" {
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", `"default-etag"`)
	w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func pageOf(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NewHealthyResponse creates a standard 200 OK response with cache headers.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"ETag":         `"test-etag-123"`,
			"Expires":      time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotModifiedResponse creates a 304 Not Modified response.
func NewNotModifiedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotModified,
		Headers: map[string]string{
			"Expires": time.Now().Add(5 * time.Minute).Format(http.TimeFormat),
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "Rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewConditionalHandler creates a handler that responds with 304 when the
// request carries a matching If-None-Match header.
func NewConditionalHandler(etag string, data string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Header.Get("If-None-Match") == etag {
			w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(data))
	}
}
