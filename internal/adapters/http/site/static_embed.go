package site

import (
	"embed"
)

//go:embed static
var staticFS embed.FS

// read returns one embedded asset. The assets are compiled in; a miss
// here is a build defect, so it panics rather than returning an error.
func read(name string) []byte {
	b, err := staticFS.ReadFile("static/" + name)
	if err != nil {
		panic("missing embedded asset: " + name)
	}
	return b
}
