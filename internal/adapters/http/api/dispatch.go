// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/trazo-ml/trazo/internal/adapters/http/site"
	"github.com/trazo-ml/trazo/internal/domain/inference"
	"github.com/trazo-ml/trazo/internal/domain/pixel"
	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/trazo-ml/trazo/pkg/metrics"
)

// canvasPrefix marks path segments that explicitly ask for the home page.
const canvasPrefix = "canvas"

// DispatchHandler routes one inbound request to a static asset, the
// canvas page, or the inference path.
type DispatchHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewDispatchHandler creates a new dispatch handler.
func NewDispatchHandler(deps Dependencies) *DispatchHandler {
	return &DispatchHandler{deps: deps, log: logger.Named("dispatch")}
}

// HandleRoot implements the request state machine: known assets first,
// then the canvas routes, then everything else is a candidate pixel
// payload. Requests for /favicon.ico are dropped with no response at
// all to keep noise out of this lightweight server.
func (h *DispatchHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	switch r.URL.Path {
	case "/style.css":
		writeAsset(w, site.StylesheetContentType, site.Stylesheet())
		return
	case "/script.js":
		writeAsset(w, site.ScriptContentType, site.Script())
		return
	case "/favicon.ico":
		h.drop(w, r)
		return
	}

	seg := strings.TrimPrefix(r.URL.Path, "/")
	if len(seg) < 2 || strings.HasPrefix(seg, canvasPrefix) {
		writeAsset(w, site.PageContentType, site.Page())
		return
	}

	h.infer(w, r, seg)
}

// infer parses the candidate payload and, when it is a full vector,
// runs the scoring query and encodes the result.
func (h *DispatchHandler) infer(w http.ResponseWriter, r *http.Request, seg string) {
	ctx := r.Context()

	v, err := pixel.Parse(seg)
	switch {
	case errors.Is(err, pixel.ErrNotAnImage):
		// An alternate outcome, not a failure: arbitrary paths land here.
		metrics.RecordNotAnImage()
		h.log.Info(ctx, "not an image",
			logger.String("request_id", RequestIDFrom(ctx)),
			logger.Int("path_len", len(seg)),
		)
		writeDiagnostic(w, http.StatusOK, "not an image")
		return
	case errors.Is(err, pixel.ErrMalformedPixel):
		metrics.RecordMalformedPixel()
		h.log.Warn(ctx, "malformed pixel payload",
			logger.String("request_id", RequestIDFrom(ctx)),
			logger.Error(err),
		)
		writeDiagnostic(w, http.StatusInternalServerError, err.Error())
		return
	case err != nil:
		writeDiagnostic(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := h.deps.Predict(ctx, v)
	if err != nil {
		h.log.Error(ctx, "inference failed",
			logger.String("request_id", RequestIDFrom(ctx)),
			logger.Error(err),
		)
		writeDiagnostic(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(inference.Encode(res)))
}

// drop closes the client connection without writing a response.
func (h *DispatchHandler) drop(w http.ResponseWriter, r *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		// Non-hijackable writers (HTTP/2, test recorders) simply get
		// nothing written.
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		h.log.Debug(r.Context(), "favicon hijack failed", logger.Error(err))
		return
	}
	_ = conn.Close()
}

// writeAsset responds with a static asset and its content type.
func writeAsset(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

// writeDiagnostic responds with the flat diagnostic string the wire
// contract promises: no structure, text/html, one message.
func writeDiagnostic(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
