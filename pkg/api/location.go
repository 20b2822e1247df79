package api

import (
	"context"
	"fmt"
	"strconv"
)

// coord formats a coordinate for use in a URL path.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FetchRecentPhotosWithinBoundingBox fetches one page of the most recent
// photos taken inside the given bounding box.
func FetchRecentPhotosWithinBoundingBox(ctx context.Context, d Doer, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest float64, page int) (PhotosResponse, error) {
	endpoint := fmt.Sprintf("/location/within/%s/%s/%s/%s/photos/recent",
		coord(latitudeNorth), coord(longitudeEast), coord(latitudeSouth), coord(longitudeWest))

	var resp PhotosResponse
	err := d.GetJSON(ctx, endpoint, pageParams(page), &resp)
	return resp, err
}

// FetchPopularPhotosWithinBoundingBox fetches one page of the most popular
// photos (uploaded in the last month) taken inside the given bounding box.
func FetchPopularPhotosWithinBoundingBox(ctx context.Context, d Doer, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest float64, page int) (PhotosResponse, error) {
	endpoint := fmt.Sprintf("/location/within/%s/%s/%s/%s/photos/popular",
		coord(latitudeNorth), coord(longitudeEast), coord(latitudeSouth), coord(longitudeWest))

	var resp PhotosResponse
	err := d.GetJSON(ctx, endpoint, pageParams(page), &resp)
	return resp, err
}

// FetchPhotosNearPoint fetches one page of photos taken closest to the
// given point within dist kilometers, ordered by distance.
func FetchPhotosNearPoint(ctx context.Context, d Doer, latitude, longitude float64, dist, page int) (PhotosResponse, error) {
	endpoint := fmt.Sprintf("/location/around/%s/%s/%d/photos/distance",
		coord(latitude), coord(longitude), dist)

	var resp PhotosResponse
	err := d.GetJSON(ctx, endpoint, pageParams(page), &resp)
	return resp, err
}

// FetchRecentPhotosNearPoint fetches one page of the most recent photos
// taken within dist kilometers of the given point.
func FetchRecentPhotosNearPoint(ctx context.Context, d Doer, latitude, longitude float64, dist, page int) (PhotosResponse, error) {
	endpoint := fmt.Sprintf("/location/around/%s/%s/%d/photos/recent",
		coord(latitude), coord(longitude), dist)

	var resp PhotosResponse
	err := d.GetJSON(ctx, endpoint, pageParams(page), &resp)
	return resp, err
}

// FetchPopularPhotosNearPoint fetches one page of the most popular photos
// (uploaded in the last month) taken within dist kilometers of the given point.
func FetchPopularPhotosNearPoint(ctx context.Context, d Doer, latitude, longitude float64, dist, page int) (PhotosResponse, error) {
	endpoint := fmt.Sprintf("/location/around/%s/%s/%d/photos/popular",
		coord(latitude), coord(longitude), dist)

	var resp PhotosResponse
	err := d.GetJSON(ctx, endpoint, pageParams(page), &resp)
	return resp, err
}
