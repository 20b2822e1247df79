package api

import (
	"context"
)

// FetchPopularPhotos fetches one page of the most popular photos uploaded
// in the last month.
func FetchPopularPhotos(ctx context.Context, d Doer, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, "/photos/popular", pageParams(page), &resp)
	return resp, err
}

// FetchRecentPhotos fetches one page of the most recent photos, right as
// they are uploaded.
func FetchRecentPhotos(ctx context.Context, d Doer, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, "/photos/recent", pageParams(page), &resp)
	return resp, err
}

// FetchSelectedPhotos fetches one page of the handpicked photo selection.
func FetchSelectedPhotos(ctx context.Context, d Doer, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, "/photos/selected", pageParams(page), &resp)
	return resp, err
}
