package errors

import (
	"strings"
)

type ErrorKind string

const (
	ErrorKindOffline  ErrorKind = "offline"
	ErrorKindNotFound ErrorKind = "not-found"
	ErrorKindParse    ErrorKind = "parse"
	ErrorKindHTTP     ErrorKind = "http"
	ErrorKindOther    ErrorKind = "other"
)

type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Hint    string // User-friendly suggestion
	Raw     error
}

func (e ClassifiedError) Error() string {
	return e.Message
}

func Classify(err error) ClassifiedError {
	if err == nil {
		return ClassifiedError{}
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "timeout") || strings.Contains(msg, "no such host") || strings.Contains(msg, "econnrefused"):
		return ClassifiedError{
			Kind:    ErrorKindOffline,
			Message: err.Error(),
			Hint:    "Is the specdock daemon running? Try 'specdock-cli status' or start it with 'specdock'",
			Raw:     err,
		}
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return ClassifiedError{
			Kind:    ErrorKindNotFound,
			Message: err.Error(),
			Hint:    "The requested specification was not found. Run 'specdock-cli list' to see what is available.",
			Raw:     err,
		}
	case strings.Contains(msg, "invalid document") || strings.Contains(msg, "unsupported file type"):
		return ClassifiedError{
			Kind:    ErrorKindParse,
			Message: err.Error(),
			Hint:    "The file could not be parsed. Check that it is valid YAML or JSON.",
			Raw:     err,
		}
	case strings.Contains(msg, "http") || strings.Contains(msg, "status code") || strings.Contains(msg, "status 5"):
		return ClassifiedError{
			Kind:    ErrorKindHTTP,
			Message: err.Error(),
			Hint:    "An HTTP error occurred during communication with the daemon.",
			Raw:     err,
		}
	default:
		return ClassifiedError{
			Kind:    ErrorKindOther,
			Message: err.Error(),
			Hint:    "An unexpected error occurred.",
			Raw:     err,
		}
	}
}
