package models

import "errors"

var (
	// ErrTransportOrParse covers network, HTTP status, JSON and schema failures
	ErrTransportOrParse = errors.New("tmdb request failed")
	// ErrInvalidIdentifier is returned for a missing or non-numeric movie id
	ErrInvalidIdentifier = errors.New("invalid movie id")
)
