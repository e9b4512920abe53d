package network

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// StatusError is returned when a site answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *StatusError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: HTTP %d (location %s)", e.URL, e.StatusCode, e.Location)
	}
	return fmt.Sprintf("%s: HTTP %d", e.URL, e.StatusCode)
}

// Check turns a non-2xx response into a *StatusError.
func Check(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}
	return &StatusError{
		URL:        res.Request.URL,
		StatusCode: res.StatusCode(),
		Location:   res.Header().Get("Location"),
	}
}
