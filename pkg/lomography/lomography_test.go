package lomography

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lomoapi/lomography-go/internal/testutil"
	"github.com/lomoapi/lomography-go/pkg/client"
	"github.com/lomoapi/lomography-go/pkg/pagination"
)

func newTestClient(t *testing.T, mock *testutil.MockLomo) *Client {
	t.Helper()

	cfg := client.DefaultConfig("test-key")
	cfg.BaseURL = mock.URL()
	cfg.Retry = client.RetryConfig{
		MaxAttempts:       1,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 1.0,
	}

	l, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return l
}

func TestFetchPopularPhotos_Window(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/photos/popular", testutil.PaginatedDataset{TotalEntries: 45})
	l := newTestClient(t, mock)

	photos, err := l.FetchPopularPhotos(context.Background(), 25, 15)
	require.NoError(t, err)

	// 25 items from offset 15 span pages 1 and 2, nothing more.
	require.Len(t, photos, 25)
	assert.Equal(t, 15, photos[0].ID)
	assert.Equal(t, 39, photos[24].ID)

	pages := mock.GetPagesRequested("/photos/popular")
	sort.Ints(pages)
	assert.Equal(t, []int{1, 2}, pages)
}

func TestFetchPopularPhotos_TruncatedAtEnd(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/photos/popular", testutil.PaginatedDataset{TotalEntries: 45})
	l := newTestClient(t, mock)

	photos, err := l.FetchPopularPhotos(context.Background(), 20, 40)
	require.NoError(t, err)

	// Only 5 items exist past offset 40.
	require.Len(t, photos, 5)
	assert.Equal(t, 40, photos[0].ID)
	assert.Equal(t, 44, photos[4].ID)
}

func TestFetchPopularPhotos_ZeroAmt(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/photos/popular", testutil.PaginatedDataset{TotalEntries: 45})
	l := newTestClient(t, mock)

	photos, err := l.FetchPopularPhotos(context.Background(), 0, 10)
	require.NoError(t, err)

	assert.Empty(t, photos)
	assert.Zero(t, mock.GetRequestCount())
}

func TestFetchPopularPhotos_InvalidWindow(t *testing.T) {
	mock := testutil.NewMockLomo()
	l := newTestClient(t, mock)

	_, err := l.FetchPopularPhotos(context.Background(), -1, 0)
	assert.ErrorIs(t, err, pagination.ErrInvalidWindow)

	_, err = l.FetchPopularPhotos(context.Background(), 5, -3)
	assert.ErrorIs(t, err, pagination.ErrInvalidWindow)
	assert.Zero(t, mock.GetRequestCount())
}

func TestFetchRecentPhotos_OrderAcrossSlowPages(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/photos/recent", testutil.PaginatedDataset{
		TotalEntries: 60,
		// Earlier pages answer last; item order must not change.
		PageDelays: map[int]time.Duration{1: 60 * time.Millisecond, 2: 30 * time.Millisecond},
	})
	l := newTestClient(t, mock)

	photos, err := l.FetchRecentPhotos(context.Background(), 50, 0)
	require.NoError(t, err)

	require.Len(t, photos, 50)
	for i, p := range photos {
		assert.Equal(t, i, p.ID)
	}
}

func TestFetchSelectedPhotos_PageFailureFailsWindow(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/photos/selected", testutil.PaginatedDataset{
		TotalEntries: 60,
		FailPage:     2,
	})
	l := newTestClient(t, mock)

	photos, err := l.FetchSelectedPhotos(context.Background(), 45, 0)
	require.Error(t, err)
	assert.Nil(t, photos)
	assert.Contains(t, err.Error(), "fetch page 2")
}

func TestFetchCameras_Window(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetCamerasDataset("/cameras", testutil.PaginatedDataset{TotalEntries: 30})
	l := newTestClient(t, mock)

	cameras, err := l.FetchCameras(context.Background(), 10, 18)
	require.NoError(t, err)

	require.Len(t, cameras, 10)
	assert.Equal(t, "Camera 18", cameras[0].Name)
	assert.Equal(t, "Camera 27", cameras[9].Name)

	pages := mock.GetPagesRequested("/cameras")
	sort.Ints(pages)
	assert.Equal(t, []int{1, 2}, pages)
}

func TestFetchFilms_Window(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetFilmsDataset("/films", testutil.PaginatedDataset{TotalEntries: 20})
	l := newTestClient(t, mock)

	films, err := l.FetchFilms(context.Background(), 20, 0)
	require.NoError(t, err)

	require.Len(t, films, 20)
	assert.Equal(t, 0, films[0].ID)
	assert.Equal(t, []int{1}, mock.GetPagesRequested("/films"))
}

func TestFetchCameraByID(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetResponse("/cameras/3314883", testutil.NewHealthyResponse(`{"id": 3314883, "name": "Lomo LC-A"}`))
	l := newTestClient(t, mock)

	camera, err := l.FetchCameraByID(context.Background(), 3314883)
	require.NoError(t, err)

	assert.Equal(t, 3314883, camera.ID)
	assert.Equal(t, "Lomo LC-A", camera.Name)
	assert.Equal(t, "test-key", mock.LastAPIKey)
}

func TestFetchFilmByID(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetResponse("/films/871911028", testutil.NewHealthyResponse(`{"id": 871911028, "name": "X-Pro Slide 100"}`))
	l := newTestClient(t, mock)

	film, err := l.FetchFilmByID(context.Background(), 871911028)
	require.NoError(t, err)
	assert.Equal(t, "X-Pro Slide 100", film.Name)
}

func TestFetchPhotosByCameraID_Window(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/cameras/7/photos/popular", testutil.PaginatedDataset{TotalEntries: 35})
	mock.SetPhotosDataset("/cameras/7/photos/recent", testutil.PaginatedDataset{TotalEntries: 35})
	l := newTestClient(t, mock)

	popular, err := l.FetchPopularPhotosByCameraID(context.Background(), 7, 30, 0)
	require.NoError(t, err)
	assert.Len(t, popular, 30)

	recent, err := l.FetchRecentPhotosByCameraID(context.Background(), 7, 5, 32)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 32, recent[0].ID)
	assert.Equal(t, []int{2}, mock.GetPagesRequested("/cameras/7/photos/recent"))
}

func TestFetchPhotosByFilmID_Window(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/films/9/photos/popular", testutil.PaginatedDataset{TotalEntries: 22})
	mock.SetPhotosDataset("/films/9/photos/recent", testutil.PaginatedDataset{TotalEntries: 22})
	l := newTestClient(t, mock)

	popular, err := l.FetchPopularPhotosByFilmID(context.Background(), 9, 25, 0)
	require.NoError(t, err)
	assert.Len(t, popular, 22)

	recent, err := l.FetchRecentPhotosByFilmID(context.Background(), 9, 2, 20)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 20, recent[0].ID)
}

func TestLocationWindows(t *testing.T) {
	mock := testutil.NewMockLomo()
	mock.SetPhotosDataset("/location/within/58.5/-6.2/57.9/-7.1/photos/recent", testutil.PaginatedDataset{TotalEntries: 12})
	mock.SetPhotosDataset("/location/within/58.5/-6.2/57.9/-7.1/photos/popular", testutil.PaginatedDataset{TotalEntries: 12})
	mock.SetPhotosDataset("/location/around/27.1/-82.45/10/photos/distance", testutil.PaginatedDataset{TotalEntries: 40})
	mock.SetPhotosDataset("/location/around/27.1/-82.45/10/photos/recent", testutil.PaginatedDataset{TotalEntries: 40})
	mock.SetPhotosDataset("/location/around/27.1/-82.45/10/photos/popular", testutil.PaginatedDataset{TotalEntries: 40})
	l := newTestClient(t, mock)
	ctx := context.Background()

	recent, err := l.FetchRecentPhotosWithinBoundingBox(ctx, 58.5, -6.2, 57.9, -7.1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 12)

	popular, err := l.FetchPopularPhotosWithinBoundingBox(ctx, 58.5, -6.2, 57.9, -7.1, 5, 10)
	require.NoError(t, err)
	assert.Len(t, popular, 2)

	near, err := l.FetchPhotosNearPoint(ctx, 27.1, -82.45, 10, 30, 5)
	require.NoError(t, err)
	require.Len(t, near, 30)
	assert.Equal(t, 5, near[0].ID)

	nearRecent, err := l.FetchRecentPhotosNearPoint(ctx, 27.1, -82.45, 10, 3, 38)
	require.NoError(t, err)
	assert.Len(t, nearRecent, 2)

	nearPopular, err := l.FetchPopularPhotosNearPoint(ctx, 27.1, -82.45, 10, 40, 0)
	require.NoError(t, err)
	assert.Len(t, nearPopular, 40)
}

func TestVerifyAuthentication(t *testing.T) {
	t.Run("accepted key", func(t *testing.T) {
		mock := testutil.NewMockLomo()
		mock.SetResponse("/cameras/3314883", testutil.NewHealthyResponse(`{"id": 3314883, "name": "Lomo LC-A"}`))
		l := newTestClient(t, mock)

		ok, err := l.VerifyAuthentication(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejected key", func(t *testing.T) {
		mock := testutil.NewMockLomo()
		mock.SetResponse("/cameras/3314883", testutil.MockResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       `{"error": "invalid api key"}`,
		})
		l := newTestClient(t, mock)

		ok, err := l.VerifyAuthentication(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
