// Package pixel parses the comma-separated pixel payload carried in the
// request path into a fixed-length vector.
package pixel

import (
	"fmt"
	"strconv"
	"strings"
)

// VectorLen is the number of values in a valid payload: one per pixel of
// a 28x28 grayscale image.
const VectorLen = 784

// Vector is an ordered sequence of exactly VectorLen pixel values.
// Values are passed through as parsed; the scoring function owns any
// range interpretation.
type Vector []float64

// Parse splits raw on commas and interprets every token as a numeric
// pixel value. A token count other than VectorLen yields ErrNotAnImage,
// which is an alternate outcome rather than a failure: most non-inference
// paths land here. A token that does not parse yields ErrMalformedPixel.
func Parse(raw string) (Vector, error) {
	tokens := strings.Split(raw, ",")
	if len(tokens) != VectorLen {
		return nil, fmt.Errorf("%w: got %d values", ErrNotAnImage, len(tokens))
	}
	v := make(Vector, VectorLen)
	for i, tok := range tokens {
		val, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %q", ErrMalformedPixel, i, tok)
		}
		v[i] = val
	}
	return v, nil
}
