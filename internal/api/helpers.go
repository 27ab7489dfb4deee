package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rentwheels/rentwheels-server/internal/store"
)

// parsePageParams reads ?page= and ?limit= with Mongo-frontend-style
// coercion: absent or unparsable values fall back to the defaults
// instead of erroring.
func parsePageParams(r *http.Request) store.PageParams {
	params := store.PageParams{}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			params.Page = page
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}

	params.Normalize()
	return params
}

// parseDate accepts either a full RFC 3339 timestamp or a bare
// YYYY-MM-DD date, which is what the booking form submits.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, store.ErrInvalidArgument.WithMessage("invalid date: " + value)
	}
	return t, nil
}
