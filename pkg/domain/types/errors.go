package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")

	// Schema definition error
	ErrInvalidSchema = goerr.New("invalid schema definition")

	// BigQuery service error
	ErrInvalidRequest = goerr.New("invalid request")
	ErrTableNotFound  = goerr.New("table not found")
	ErrAlreadyExists  = goerr.New("resource already exists")

	// Feed error
	ErrFeedUnavailable = goerr.New("feed is not available")

	// Assertion error
	ErrAssertion = goerr.New("assertion error")
)
