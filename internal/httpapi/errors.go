package httpapi

import "errors"

var (
	errMissingRequestParam = errors.New("missing request query parameter")
	errInvalidRequestParam = errors.New("invalid request query parameter")
)
