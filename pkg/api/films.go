package api

import (
	"context"
	"fmt"
)

// FetchFilms fetches one page of all film types.
func FetchFilms(ctx context.Context, d Doer, page int) (FilmsResponse, error) {
	var resp FilmsResponse
	err := d.GetJSON(ctx, "/films", pageParams(page), &resp)
	return resp, err
}

// FetchFilmByID fetches a single film by its unique ID.
func FetchFilmByID(ctx context.Context, d Doer, filmID int) (Film, error) {
	var film Film
	err := d.GetJSON(ctx, fmt.Sprintf("/films/%d", filmID), nil, &film)
	return film, err
}

// FetchPopularPhotosByFilmID fetches one page of the most popular photos
// taken with the given film.
func FetchPopularPhotosByFilmID(ctx context.Context, d Doer, filmID, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, fmt.Sprintf("/films/%d/photos/popular", filmID), pageParams(page), &resp)
	return resp, err
}

// FetchRecentPhotosByFilmID fetches one page of the most recent photos
// taken with the given film.
func FetchRecentPhotosByFilmID(ctx context.Context, d Doer, filmID, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, fmt.Sprintf("/films/%d/photos/recent", filmID), pageParams(page), &resp)
	return resp, err
}
