package source

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned by the remote source when no API key is
// configured.
var ErrMissingCredential = errors.New("unsplash API key missing: set api_key in config or GALLERIA_UNSPLASH_KEY")

// FetchError reports a failed page fetch. Status is the HTTP status code when
// the server answered, zero for transport and decode failures.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	case e.URL == "":
		return fmt.Sprintf("fetch: %v", e.Err)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
