package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORS response and request header names.
const (
	allowOriginHeader    = "Access-Control-Allow-Origin"
	allowHeadersHeader   = "Access-Control-Allow-Headers"
	allowMethodsHeader   = "Access-Control-Allow-Methods"
	requestHeadersHeader = "Access-Control-Request-Headers"
	maxAgeHeader         = "Access-Control-Max-Age"
	varyHeader           = "Vary"
	headerSeparator      = ", "
)

// Cors holds the cross-origin policy applied to every response.
// An AllowOrigins entry of "*" allows any origin.
type Cors struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DefaultCors allows any origin to call the API with JSON bodies.
func DefaultCors() *Cors {
	return NewCors([]string{"*"})
}

// NewCors returns a policy for the given origins with the API's methods and
// the Content-Type header allowed.
func NewCors(origins []string) *Cors {
	return &Cors{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       10 * time.Minute,
	}
}

func (c *Cors) allowOrigin(origin string) (string, bool) {
	for _, allowed := range c.AllowOrigins {
		if allowed == "*" {
			if origin == "" {
				return "*", true
			}
			return origin, true
		}
		if origin != "" && strings.EqualFold(allowed, origin) {
			return origin, true
		}
	}
	return "", false
}

func (c *Cors) setHeaders(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Add(varyHeader, "Origin")

	origin, ok := c.allowOrigin(r.Header.Get("Origin"))
	if !ok {
		return
	}
	h.Set(allowOriginHeader, origin)

	if len(c.AllowMethods) > 0 {
		h.Set(allowMethodsHeader, strings.Join(c.AllowMethods, headerSeparator))
	}

	switch {
	case r.Method == http.MethodOptions && r.Header.Get(requestHeadersHeader) != "":
		h.Set(allowHeadersHeader, r.Header.Get(requestHeadersHeader))
	case len(c.AllowHeaders) > 0:
		h.Set(allowHeadersHeader, strings.Join(c.AllowHeaders, headerSeparator))
	}

	if c.MaxAge > 0 {
		h.Set(maxAgeHeader, strconv.Itoa(int(c.MaxAge.Seconds())))
	}
}

// corsMiddleware sets the CORS headers on every response and answers
// preflight requests with 204 without reaching the handler.
func corsMiddleware(c *Cors, next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApplyMiddleware wraps next in the standard middleware chain. Recovery is
// innermost and CORS outermost, so preflights are not logged.
func ApplyMiddleware(next http.Handler, logger *slog.Logger, cors *Cors) http.Handler {
	handler := recoveryMiddleware(logger, next)
	handler = loggingMiddleware(logger, handler)
	return corsMiddleware(cors, handler)
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeMessage(w, http.StatusInternalServerError, msgInternalServer)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
