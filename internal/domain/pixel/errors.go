package pixel

import "errors"

// Sentinel kinds for payload parsing.
var (
	// ErrNotAnImage marks a payload whose token count is not VectorLen.
	ErrNotAnImage = errors.New("not an image")

	// ErrMalformedPixel marks a token that failed numeric parsing.
	ErrMalformedPixel = errors.New("malformed pixel value")
)
