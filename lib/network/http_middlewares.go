package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network/httputils"
)

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					log.Error("recover an panic", "err", err)
					if printStack {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits the requests per client ip; the unlimited
// rule passes every request.
func RateLimitMiddleware(rule common.RateLimitRule) mux.MiddlewareFunc {
	if rule.IsUnlimited() {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	middleware := stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rule.Default),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			httputils.WriteJSON(w, http.StatusTooManyRequests, httputils.NewStatusProblem(http.StatusTooManyRequests))
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			httputils.WriteJSONError(w, errors.HTTPServerError.Clone().SetData("error", err.Error()))
		}),
	)

	return func(next http.Handler) http.Handler {
		return middleware.Handler(next)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush keeps the event stream working behind the middleware.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// MetricsMiddleware observes the request with the route template as
// endpoint, so the ids in path do not make new series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		metrics.API.ObserveRequest(begin, endpoint, r.Method, sw.status)
	})
}

func CORSMiddleware(origins []string) mux.MiddlewareFunc {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept"}),
	)
}
