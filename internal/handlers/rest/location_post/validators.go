package location_post

import (
	"errors"
	"math"

	"courier-agent/internal/generated/dto"
)

var (
	errMissingCoordinates = errors.New("fields lat and lon are required")
	errLatOutOfRange      = errors.New("lat must be within [-90, 90]")
	errLonOutOfRange      = errors.New("lon must be within [-180, 180]")
)

func validateSample(req dto.LocationSampleRequest) error {
	if req.Lat == nil || req.Lon == nil {
		return errMissingCoordinates
	}
	if math.IsNaN(*req.Lat) || *req.Lat < -90 || *req.Lat > 90 {
		return errLatOutOfRange
	}
	if math.IsNaN(*req.Lon) || *req.Lon < -180 || *req.Lon > 180 {
		return errLonOutOfRange
	}
	return nil
}
