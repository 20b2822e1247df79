package api

import (
	"context"
	"errors"

	"github.com/lomoapi/lomography-go/pkg/client"
)

// verificationCameraID is a known camera (Lomo LC-A) used to probe the API
// key. The API has no dedicated authentication endpoint; a fetch of a known
// resource failing with an HTTP error means the key is invalid.
const verificationCameraID = 3314883

// VerifyAuthentication reports whether the configured API key is accepted
// by the upstream. HTTP-level rejections map to false; transport failures
// are returned as errors since they say nothing about the key.
func VerifyAuthentication(ctx context.Context, d Doer) (bool, error) {
	_, err := FetchCameraByID(ctx, d, verificationCameraID)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
