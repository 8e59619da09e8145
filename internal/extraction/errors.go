package extraction

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrUnreadablePDF = errors.New("unreadable PDF")
	ErrTooShort      = errors.New("document too short")
	ErrNotRegulatory = errors.New("document does not appear to be regulatory content")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyDocument),
		errors.Is(err, ErrUnreadablePDF),
		errors.Is(err, ErrTooShort),
		errors.Is(err, ErrNotRegulatory):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
