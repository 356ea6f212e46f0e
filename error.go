package slowcrawl

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// Sentinel causes wrapped by FetchError and ParseError.
var (
	// ErrDuplicateURL indicates the URL was already fetched in this or an earlier run.
	ErrDuplicateURL = Errorf(ECONFLICT, "url already fetched")

	// ErrDuplicateContent indicates identical document content was already parsed.
	ErrDuplicateContent = Errorf(ECONFLICT, "document content already parsed")

	// ErrInvalidCategory indicates a fingerprint category outside {url, doc}.
	// It is a programming error, never a runtime data condition.
	ErrInvalidCategory = Errorf(EINVALID, "invalid fingerprint category")
)

// FetchError reports that a URL could not be fetched, either because it
// was already seen or because the transport failed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unable to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that fetched content could not be parsed, either
// because identical content was already parsed or because the markup is malformed.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RobotsUnavailableError reports that robots.txt for an origin could not be
// retrieved or parsed. Robots gates treat it as permission to fetch.
type RobotsUnavailableError struct {
	URL string
	Err error
}

func (e *RobotsUnavailableError) Error() string {
	return fmt.Sprintf("robots.txt unavailable at %s: %v", e.URL, e.Err)
}

func (e *RobotsUnavailableError) Unwrap() error { return e.Err }
