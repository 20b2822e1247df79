// Package api implements the Lomography REST endpoints: typed response
// models and one fetch function per endpoint. Functions build the request
// path and parameters and delegate transport concerns (auth, caching,
// retries) to the injected Doer, implemented by pkg/client.
package api

import (
	"context"
	"net/url"
	"strconv"
)

// Doer executes an API GET request and decodes the JSON response into v.
type Doer interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, v any) error
}

// Meta is the pagination metadata attached to every list response.
type Meta struct {
	TotalEntries int `json:"total_entries"`
	PerPage      int `json:"per_page"`
	Page         int `json:"page"`
}

// Camera is a specific camera model.
type Camera struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Film is a specific type of film.
type Film struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Lens is a specific lens model.
type Lens struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tag is a photo tag.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Location is a geographic point attached to a photo.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Image is a generic image: user avatars, photo assets, etc.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PhotoImage is an actual photo asset with ratio and filename, normally
// found under a photo's assets.
type PhotoImage struct {
	Image
	Ratio    float64 `json:"ratio"`
	Filename string  `json:"filename"`
}

// Assets holds the small and large renditions of a photo.
//
// Small has an inner bounding box of 96x64 pixels (the image is at least
// this size); Large has an outer bounding box of 576x576 pixels (the image
// is at most this size).
type Assets struct {
	Small PhotoImage `json:"small"`
	Large PhotoImage `json:"large"`
}

// User is the uploader of a photo.
type User struct {
	Username string `json:"username"`
	URL      string `json:"url"`
	Avatar   *Image `json:"avatar"`
}

// Photo is a single photo as returned by the API.
type Photo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`

	Camera *Camera `json:"camera"`
	Film   *Film   `json:"film"`
	Lens   *Lens   `json:"lens"`
	Tags   []Tag   `json:"tags"`
	User   User    `json:"user"`

	Assets Assets `json:"assets"`

	// Additional info about the asset, unchanged from the API
	AssetHash    string  `json:"asset_hash"`
	AssetWidth   int     `json:"asset_width"`
	AssetHeight  int     `json:"asset_height"`
	AssetRatio   float64 `json:"asset_ratio"`
	AssetPreview string  `json:"asset_preview"`
}

// PhotosResponse is a paged response of photos.
type PhotosResponse struct {
	Meta   Meta    `json:"meta"`
	Photos []Photo `json:"photos"`
}

// CamerasResponse is a paged response of cameras.
type CamerasResponse struct {
	Meta    Meta     `json:"meta"`
	Cameras []Camera `json:"cameras"`
}

// FilmsResponse is a paged response of films.
type FilmsResponse struct {
	Meta  Meta   `json:"meta"`
	Films []Film `json:"films"`
}

// pageParams builds the query parameters for a paged endpoint.
func pageParams(page int) url.Values {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}
