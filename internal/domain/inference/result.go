package inference

import (
	"fmt"
	"strings"
)

// Result is the raw result set of the scoring query: rows of scalar
// columns. The digit model returns a single row with a single column,
// but the encoder makes no such assumption.
type Result struct {
	Rows [][]any
}

// Encode serializes every scalar across every row into concatenated
// <resultado>value</resultado> fragments, row-major. No separators, no
// structure beyond the tags; callers know the shape of their query.
func Encode(res Result) string {
	var b strings.Builder
	for _, row := range res.Rows {
		for _, col := range row {
			b.WriteString("<resultado>")
			b.WriteString(fmt.Sprint(col))
			b.WriteString("</resultado>")
		}
	}
	return b.String()
}
