package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDHeader = "X-Request-ID"

// NewRouter creates the read-only query API.
func NewRouter(
	book BookReader,
	pair string,
	gatherer prometheus.Gatherer,
	health healthcheck.HealthCheck,
	log *logger.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogging(log))
	r.Use(health.Handler)

	bookH := NewBookHandler(book, pair)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/book", bookH.GetBook)
		r.Get("/book/best-bid", bookH.GetBestBid)
		r.Get("/book/best-ask", bookH.GetBestAsk)
		r.Get("/trades", bookH.GetTrades)
		r.Get("/stats", bookH.GetStats)
	})

	return r
}

// requestID attaches the caller's request id, or a new one, to the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, util.GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration.
func requestLogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				logger.Field{Key: "method", Value: r.Method},
				logger.Field{Key: "path", Value: r.URL.Path},
				logger.Field{Key: "status", Value: ww.status},
				logger.Field{Key: "duration", Value: time.Since(start)},
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
