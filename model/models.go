package model

import (
	"net/url"

	"github.com/pkg/errors"
)

// Request is the body of a download request.
type Request struct {
	URL string `json:"url"`
}

// Validate accepts absolute http(s) slideshow URLs only.
func (r *Request) Validate() error {
	if r.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return errors.Wrap(err, "invalid url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid url: %s", r.URL)
	}
	return nil
}

// Response carries a message, or the public URL of an offloaded file.
type Response struct {
	Message string `json:"message"`
}
