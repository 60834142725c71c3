package slideshare

import (
	"fmt"

	"github.com/pkg/errors"
)

// Argument and configuration errors. They are returned wrapped with the
// offending detail, so compare with errors.Is.
var (
	// ErrConfiguration indicates the client was constructed with unusable credentials
	ErrConfiguration = errors.New("slideshare: invalid configuration")
	// ErrInvalidArgument indicates a malformed or missing call parameter
	ErrInvalidArgument = errors.New("slideshare: invalid argument")
	// ErrDependency indicates a dependent flag was requested without its prerequisite
	ErrDependency = errors.New("slideshare: unmet parameter dependency")
	// ErrMissingCredentials indicates an authenticated operation has no username/password
	ErrMissingCredentials = errors.New("slideshare: missing user credentials")
)

// Error codes reported by the service in its error envelope.
const (
	CodeNoAPIKey               = 0
	CodeFailedValidation       = 1
	CodeFailedAuthentication   = 2
	CodeMissingTitle           = 3
	CodeMissingFile            = 4
	CodeBlankTitle             = 5
	CodeNotSourceObject        = 6
	CodeInvalidExtension       = 7
	CodeFileTooBig             = 8
	CodeSlideshowNotFound      = 9
	CodeUserNotFound           = 10
	CodeGroupNotFound          = 11
	CodeNoTagProvided          = 12
	CodeTagNotFound            = 13
	CodeMissingParameter       = 14
	CodeBlankSearchQuery       = 15
	CodeInsufficientPermission = 16
	CodeIncorrectParameters    = 17
	CodeAccountAlreadyLinked   = 70
	CodeNoLinkedAccount        = 71
	CodeUserNotCreated         = 72
	CodeInvalidApplicationID   = 73
	CodeLoginExists            = 74
	CodeEmailExists            = 75
	CodeDailyLimitExceeded     = 99
	CodeAccountBlocked         = 100
)

// ServiceError is the failure the service reports through its error envelope.
type ServiceError struct {
	Code    int
	Message string
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("slideshare service error %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether the requested slideshow, user, group or tag does not exist
func (e *ServiceError) IsNotFound() bool {
	switch e.Code {
	case CodeSlideshowNotFound, CodeUserNotFound, CodeGroupNotFound, CodeTagNotFound:
		return true
	}
	return false
}

// IsAuthFailure reports whether the api key, signature or user credentials were rejected
func (e *ServiceError) IsAuthFailure() bool {
	switch e.Code {
	case CodeNoAPIKey, CodeFailedValidation, CodeFailedAuthentication, CodeInsufficientPermission:
		return true
	}
	return false
}

// TransportError is a network failure or a non-2xx HTTP status.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("slideshare %s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("slideshare %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means the response body was not well-formed XML.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("slideshare: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
