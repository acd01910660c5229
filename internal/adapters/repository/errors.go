package repository

import "errors"

// Sentinel kinds for snapshot lookups.
var (
	ErrNotFound = errors.New("snapshot not found")
	ErrExpired  = errors.New("snapshot expired")
)
