// Package lomography is the high-level entry point of the library. It
// combines the HTTP client with the windowed pagination fetcher so callers
// ask for "amt items starting at index" and never deal with pages.
//
// The amt/index convention: index is the zero-based offset of the first
// item wanted, amt the number of items. The library computes the covering
// page range, fetches those pages concurrently and returns exactly the
// requested slice (shorter when the data runs out).
package lomography

import (
	"context"

	"github.com/lomoapi/lomography-go/pkg/api"
	"github.com/lomoapi/lomography-go/pkg/client"
	"github.com/lomoapi/lomography-go/pkg/pagination"
)

// Client provides windowed access to the Lomography API.
type Client struct {
	c *client.Client
}

// New creates a Client from a full client configuration.
func New(cfg client.Config) (*Client, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

// NewWithAPIKey creates a Client with default configuration. Redis caching
// and request budgeting are disabled; use New with a client.Config to
// enable them.
func NewWithAPIKey(apiKey string) (*Client, error) {
	return New(client.DefaultConfig(apiKey))
}

// VerifyAuthentication reports whether the configured API key is accepted
// by the upstream.
func (l *Client) VerifyAuthentication(ctx context.Context) (bool, error) {
	return api.VerifyAuthentication(ctx, l.c)
}

// photoPage adapts a page-oriented endpoint function into a PageFetcher.
func (l *Client) photoPage(fetch func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error)) pagination.PageFetcher[api.Photo] {
	return func(ctx context.Context, page int) (pagination.Page[api.Photo], error) {
		resp, err := fetch(ctx, l.c, page)
		if err != nil {
			return pagination.Page[api.Photo]{}, err
		}
		return pagination.Page[api.Photo]{Items: resp.Photos, Meta: pagination.Meta(resp.Meta)}, nil
	}
}

// FetchPopularPhotos fetches amt of the most popular photos uploaded in
// the last month, starting at item offset index.
func (l *Client) FetchPopularPhotos(ctx context.Context, amt, index int) ([]api.Photo, error) {
	return pagination.FetchWindow(ctx, l.photoPage(api.FetchPopularPhotos), amt, index)
}

// FetchRecentPhotos fetches amt of the most recently uploaded photos,
// starting at item offset index.
func (l *Client) FetchRecentPhotos(ctx context.Context, amt, index int) ([]api.Photo, error) {
	return pagination.FetchWindow(ctx, l.photoPage(api.FetchRecentPhotos), amt, index)
}

// FetchSelectedPhotos fetches amt hand-picked photos, starting at item
// offset index.
func (l *Client) FetchSelectedPhotos(ctx context.Context, amt, index int) ([]api.Photo, error) {
	return pagination.FetchWindow(ctx, l.photoPage(api.FetchSelectedPhotos), amt, index)
}

// FetchCameras fetches amt camera models, starting at item offset index.
func (l *Client) FetchCameras(ctx context.Context, amt, index int) ([]api.Camera, error) {
	fetch := func(ctx context.Context, page int) (pagination.Page[api.Camera], error) {
		resp, err := api.FetchCameras(ctx, l.c, page)
		if err != nil {
			return pagination.Page[api.Camera]{}, err
		}
		return pagination.Page[api.Camera]{Items: resp.Cameras, Meta: pagination.Meta(resp.Meta)}, nil
	}
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchCameraByID fetches a single camera by its unique ID.
func (l *Client) FetchCameraByID(ctx context.Context, cameraID int) (api.Camera, error) {
	return api.FetchCameraByID(ctx, l.c, cameraID)
}

// FetchPopularPhotosByCameraID fetches amt of the most popular photos
// taken with the given camera, starting at item offset index.
func (l *Client) FetchPopularPhotosByCameraID(ctx context.Context, cameraID, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchPopularPhotosByCameraID(ctx, d, cameraID, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchRecentPhotosByCameraID fetches amt of the most recent photos taken
// with the given camera, starting at item offset index.
func (l *Client) FetchRecentPhotosByCameraID(ctx context.Context, cameraID, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchRecentPhotosByCameraID(ctx, d, cameraID, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchFilms fetches amt film types, starting at item offset index.
func (l *Client) FetchFilms(ctx context.Context, amt, index int) ([]api.Film, error) {
	fetch := func(ctx context.Context, page int) (pagination.Page[api.Film], error) {
		resp, err := api.FetchFilms(ctx, l.c, page)
		if err != nil {
			return pagination.Page[api.Film]{}, err
		}
		return pagination.Page[api.Film]{Items: resp.Films, Meta: pagination.Meta(resp.Meta)}, nil
	}
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchFilmByID fetches a single film by its unique ID.
func (l *Client) FetchFilmByID(ctx context.Context, filmID int) (api.Film, error) {
	return api.FetchFilmByID(ctx, l.c, filmID)
}

// FetchPopularPhotosByFilmID fetches amt of the most popular photos taken
// with the given film, starting at item offset index.
func (l *Client) FetchPopularPhotosByFilmID(ctx context.Context, filmID, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchPopularPhotosByFilmID(ctx, d, filmID, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchRecentPhotosByFilmID fetches amt of the most recent photos taken
// with the given film, starting at item offset index.
func (l *Client) FetchRecentPhotosByFilmID(ctx context.Context, filmID, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchRecentPhotosByFilmID(ctx, d, filmID, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchRecentPhotosWithinBoundingBox fetches amt of the most recent photos
// taken inside the bounding box, starting at item offset index.
func (l *Client) FetchRecentPhotosWithinBoundingBox(ctx context.Context, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest float64, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchRecentPhotosWithinBoundingBox(ctx, d, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchPopularPhotosWithinBoundingBox fetches amt of the most popular
// photos taken inside the bounding box, starting at item offset index.
func (l *Client) FetchPopularPhotosWithinBoundingBox(ctx context.Context, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest float64, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchPopularPhotosWithinBoundingBox(ctx, d, latitudeNorth, longitudeEast, latitudeSouth, longitudeWest, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchPhotosNearPoint fetches amt photos taken within dist kilometers of
// the point, ordered by distance, starting at item offset index.
func (l *Client) FetchPhotosNearPoint(ctx context.Context, latitude, longitude float64, dist, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchPhotosNearPoint(ctx, d, latitude, longitude, dist, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchRecentPhotosNearPoint fetches amt of the most recent photos taken
// within dist kilometers of the point, starting at item offset index.
func (l *Client) FetchRecentPhotosNearPoint(ctx context.Context, latitude, longitude float64, dist, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchRecentPhotosNearPoint(ctx, d, latitude, longitude, dist, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}

// FetchPopularPhotosNearPoint fetches amt of the most popular photos taken
// within dist kilometers of the point, starting at item offset index.
func (l *Client) FetchPopularPhotosNearPoint(ctx context.Context, latitude, longitude float64, dist, amt, index int) ([]api.Photo, error) {
	fetch := l.photoPage(func(ctx context.Context, d api.Doer, page int) (api.PhotosResponse, error) {
		return api.FetchPopularPhotosNearPoint(ctx, d, latitude, longitude, dist, page)
	})
	return pagination.FetchWindow(ctx, fetch, amt, index)
}
