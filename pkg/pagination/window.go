package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PageSize is the fixed number of items per upstream page. The Lomography
// API always pages at this size; the window math below relies on it.
const PageSize = 20

// ErrInvalidWindow is returned when amt or index is negative.
var ErrInvalidWindow = errors.New("pagination: amt and index must be non-negative")

// Meta holds the pagination metadata attached to every list response.
type Meta struct {
	TotalEntries int `json:"total_entries"`
	PerPage      int `json:"per_page"`
	Page         int `json:"page"`
}

// Page is one upstream page of items together with its metadata.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// PageFetcher fetches a single 1-based page. Implementations are closures
// over a concrete endpoint (popular photos, cameras for a film, ...) and
// must be safe for concurrent invocation: FetchWindow calls the fetcher
// once per page in the window, all at once.
type PageFetcher[T any] func(ctx context.Context, page int) (Page[T], error)

// FetchWindow fetches amt items starting at the zero-based item offset
// index. It computes the contiguous page range covering the window, issues
// one fetch per page concurrently, and returns the items in upstream order.
//
// The result length is min(amt, items actually available past index); a
// window entirely beyond the end of the data yields an empty slice, not an
// error. If any page fetch fails, FetchWindow returns nil and the first
// failure.
func FetchWindow[T any](ctx context.Context, fetch PageFetcher[T], amt, index int) ([]T, error) {
	if amt < 0 || index < 0 {
		return nil, fmt.Errorf("%w (amt=%d, index=%d)", ErrInvalidWindow, amt, index)
	}
	if amt == 0 {
		// endPage would land before startPage; no pages to fetch.
		return []T{}, nil
	}

	startPage := index/PageSize + 1
	endPage := (index + amt - 1) / PageSize + 1

	log.Debug().
		Int("amt", amt).
		Int("index", index).
		Int("start_page", startPage).
		Int("end_page", endPage).
		Msg("Fetching window")

	// One slot per page, indexed by page offset within the range. Each
	// goroutine writes only its own slot, so the concatenation below is
	// ordered by page number regardless of completion order.
	pages := make([][]T, endPage-startPage+1)

	g, ctx := errgroup.WithContext(ctx)
	for page := startPage; page <= endPage; page++ {
		g.Go(func() error {
			p, err := fetch(ctx, page)
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			pages[page-startPage] = p.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]T, 0, amt)
	for _, p := range pages {
		items = append(items, p...)
	}

	// Clamp against the actual concatenation length: the last page may be
	// short, or the whole range may be past the end of the data.
	lo := index - (startPage-1)*PageSize
	if lo > len(items) {
		lo = len(items)
	}
	hi := lo + amt
	if hi > len(items) {
		hi = len(items)
	}

	return items[lo:hi:hi], nil
}
