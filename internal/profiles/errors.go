package profiles

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles present")
	ErrDuplicateTicker = errors.New("duplicate ticker")
	ErrEmptyTicker     = errors.New("empty ticker")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
