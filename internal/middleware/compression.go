package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// Pool of gzip writers for reuse (reduces allocations)
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		gz, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return gz
	},
}

// gzipResponseWriter decides on compression when the header is written and
// only allocates a gzip writer once a body byte arrives.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
	compress    bool
	// the request's If-None-Match named the gzip variant
	gzipValidator bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	h := w.Header()
	h.Add("Vary", "Accept-Encoding")
	switch {
	case statusCode == http.StatusNotModified:
		if w.gzipValidator {
			setGzipETag(h)
		}
	// Content-Range counts identity bytes; a partial body is sent as is
	case statusCode == http.StatusPartialContent, statusCode == http.StatusNoContent, h.Get("Content-Range") != "":
	case h.Get("Content-Encoding") == "" && compressible(h.Get("Content-Type")):
		h.Set("Content-Encoding", "gzip")
		// Remove Content-Length as it will change after compression
		h.Del("Content-Length")
		setGzipETag(h)
		w.compress = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if !w.compress {
		return w.ResponseWriter.Write(b)
	}
	if w.gz == nil {
		w.gz = gzipWriterPool.Get().(*gzip.Writer)
		w.gz.Reset(w.ResponseWriter)
	}
	return w.gz.Write(b)
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	w.gz.Close()
	gzipWriterPool.Put(w.gz)
	w.gz = nil
}

const gzipETagSuffix = "-gzip"

// setGzipETag gives the compressed representation its own validator
func setGzipETag(h http.Header) {
	tag := h.Get("ETag")
	if !strings.HasSuffix(tag, `"`) || strings.HasSuffix(tag, gzipETagSuffix+`"`) {
		return
	}
	h.Set("ETag", tag[:len(tag)-1]+gzipETagSuffix+`"`)
}

// identityValidators maps gzip ETags in an If-None-Match value back to the
// identity tags the handler knows, reporting whether any were rewritten.
func identityValidators(inm string) (string, bool) {
	if !strings.Contains(inm, gzipETagSuffix+`"`) {
		return inm, false
	}
	return strings.ReplaceAll(inm, gzipETagSuffix+`"`, `"`), true
}

// compressible reports whether a content type benefits from gzip
func compressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/") ||
		strings.HasPrefix(ct, "application/json") ||
		strings.HasPrefix(ct, "application/javascript") ||
		strings.HasPrefix(ct, "application/xml") ||
		strings.HasPrefix(ct, "image/svg+xml")
}

// GzipCompression middleware compresses responses using gzip
// Only compresses compressible content types (text, json, css, js, html, xml)
func GzipCompression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if client accepts gzip encoding
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		// Skip already compressed formats (images, fonts, etc.)
		path := r.URL.Path
		for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".ico", ".woff", ".woff2", ".zip", ".gz"} {
			if strings.HasSuffix(path, ext) {
				next.ServeHTTP(w, r)
				return
			}
		}

		gzw := &gzipResponseWriter{ResponseWriter: w}
		defer gzw.close()

		if inm, ok := identityValidators(r.Header.Get("If-None-Match")); ok {
			r = r.Clone(r.Context())
			r.Header.Set("If-None-Match", inm)
			gzw.gzipValidator = true
		}

		next.ServeHTTP(gzw, r)
	})
}
