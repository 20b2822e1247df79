package api

import (
	"context"
	"fmt"
)

// FetchCameras fetches one page of all camera models.
func FetchCameras(ctx context.Context, d Doer, page int) (CamerasResponse, error) {
	var resp CamerasResponse
	err := d.GetJSON(ctx, "/cameras", pageParams(page), &resp)
	return resp, err
}

// FetchCameraByID fetches a single camera by its unique ID.
func FetchCameraByID(ctx context.Context, d Doer, cameraID int) (Camera, error) {
	var camera Camera
	err := d.GetJSON(ctx, fmt.Sprintf("/cameras/%d", cameraID), nil, &camera)
	return camera, err
}

// FetchPopularPhotosByCameraID fetches one page of the most popular photos
// taken with the given camera.
func FetchPopularPhotosByCameraID(ctx context.Context, d Doer, cameraID, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, fmt.Sprintf("/cameras/%d/photos/popular", cameraID), pageParams(page), &resp)
	return resp, err
}

// FetchRecentPhotosByCameraID fetches one page of the most recent photos
// taken with the given camera.
func FetchRecentPhotosByCameraID(ctx context.Context, d Doer, cameraID, page int) (PhotosResponse, error) {
	var resp PhotosResponse
	err := d.GetJSON(ctx, fmt.Sprintf("/cameras/%d/photos/recent", cameraID), pageParams(page), &resp)
	return resp, err
}
