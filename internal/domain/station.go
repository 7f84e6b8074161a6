package domain

import "errors"

// Validation errors for station checks
var (
	ErrStationImageEmpty = errors.New("station check image cannot be empty")
)

// StationCheckRequest asks the model to verify a station photograph: a single
// encoded image (base64, optionally a data URL) and, when known, the
// anatomical topic the station is supposed to show.
type StationCheckRequest struct {
	Image string `json:"image"`
	Topic string `json:"topic,omitempty"`
}

// Validate checks if the StationCheckRequest has valid data.
func (r StationCheckRequest) Validate() error {
	if r.Image == "" {
		return ErrStationImageEmpty
	}
	return nil
}

// StationReport is the model's verdict on a station photograph: whether the
// image genuinely shows identifiable anatomical material, plus follow-up
// questions grounded in the image when it does.
type StationReport struct {
	IsValid   bool       `json:"isValid"`
	Questions []Question `json:"questions"`
}

// EmptyStationReport returns the fallback verdict used when the model's
// answer cannot be interpreted: the station is not validated and no
// questions are offered.
func EmptyStationReport() *StationReport {
	return &StationReport{IsValid: false, Questions: []Question{}}
}
