package entities

import "time"

// LocationSample - сырая точка от датчика, нигде не сохраняется.
type LocationSample struct {
	Lat        float64
	Lon        float64
	CapturedAt time.Time
}

func (s LocationSample) Location() Location {
	return Location{Lat: s.Lat, Lon: s.Lon}
}
