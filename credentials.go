package slideshare

import (
	"strings"

	"github.com/pkg/errors"
)

// Credentials identify the API account and, optionally, a default user
// on whose behalf authenticated operations run.
type Credentials struct {
	APIKey       string
	SharedSecret string
	Username     string
	Password     string
}

// Validate checks that the api key and shared secret are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.Wrap(ErrConfiguration, "api key must be provided")
	}
	if strings.TrimSpace(c.SharedSecret) == "" {
		return errors.Wrap(ErrConfiguration, "shared secret must be provided")
	}
	return nil
}

// user resolves the username/password pair for a call. Values given with
// the call win over the defaults, field by field.
func (c Credentials) user(username, password string) (string, string) {
	if username == "" {
		username = c.Username
	}
	if password == "" {
		password = c.Password
	}
	return username, password
}
