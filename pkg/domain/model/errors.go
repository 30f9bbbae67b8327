package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrNoUpdate         = goerr.New("no update")
	ErrCountryNotFound  = goerr.New("country not found")
	ErrPresetNotFound   = goerr.New("query preset not found")
	ErrMissingParameter = goerr.New("missing query parameter")
	ErrQueryRejected    = goerr.New("query rejected")
	ErrEmptyDataset     = goerr.New("dataset query returned no rows")
	ErrInvalidToken     = goerr.New("invalid token")
	ErrForbidden        = goerr.New("forbidden")
)
