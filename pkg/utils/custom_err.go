package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrBackendInvocation   = errors.New("generative backend error")
	ErrMalformedOutput     = errors.New("malformed model output")
	ErrUnsupportedProvider = errors.New("unsupported generative provider")
	ErrMissingAPIKey       = errors.New("missing api key")
)
