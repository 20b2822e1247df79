// Package pagination provides windowed fetching over paginated Lomography endpoints.
//
// The Lomography API serves fixed-size pages of 20 items addressed by a
// 1-based page number. Callers think in item offsets instead: "give me amt
// items starting at index". FetchWindow translates that window into the
// minimal contiguous page range, fetches every page in the range
// concurrently, reassembles the pages in page-number order, and slices the
// concatenation to the exact requested window.
//
// Example usage:
//
//	fetch := func(ctx context.Context, page int) (pagination.Page[api.Photo], error) {
//		resp, err := api.FetchPopularPhotos(ctx, doer, page)
//		if err != nil {
//			return pagination.Page[api.Photo]{}, err
//		}
//		return pagination.Page[api.Photo]{Items: resp.Photos, Meta: pagination.Meta(resp.Meta)}, nil
//	}
//	photos, err := pagination.FetchWindow(ctx, fetch, 25, 15) // pages 1 and 2
//
// Latency of a multi-page window is bounded by the slowest single page, not
// by the sum of all pages. Output order depends only on page number, never
// on fetch completion order. If any page fetch fails, the whole window
// fails and no items are returned.
package pagination
