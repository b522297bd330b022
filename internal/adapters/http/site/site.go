// Package site holds the embedded canvas page and its assets. The
// front-end is an opaque client as far as the server is concerned: it
// draws a 28x28 digit and produces the comma-separated pixel payload.
package site

// Content types for the embedded assets.
const (
	PageContentType       = "text/html; charset=utf-8"
	StylesheetContentType = "text/css; charset=utf-8"
	ScriptContentType     = "text/javascript; charset=utf-8"
)

// Page returns the HTML canvas document served on the home route.
func Page() []byte {
	return read("index.html")
}

// Stylesheet returns the CSS asset served on /style.css.
func Stylesheet() []byte {
	return read("style.css")
}

// Script returns the JS asset served on /script.js.
func Script() []byte {
	return read("script.js")
}
