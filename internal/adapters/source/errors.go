package source

import "errors"

// Sentinel kinds for input errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrSchemaValidation  = errors.New("games document does not match schema")
	ErrMalformedRow      = errors.New("malformed csv row")
)
