package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// Path is served by the health check handler.
const Path = "/healthz"

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// HealthCheck is the health check handler.
type HealthCheck struct {
	// Probes are run on every request, keyed by dependency name.
	Probes map[string]Probe
	// Timeout bounds all probes of one request. Zero means one second.
	Timeout time.Duration
}

type response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler is used to control the flow of GET /healthz endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check. Any failing probe turns
// the response into 503.
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := hc.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	resp := response{Status: "ok"}
	status := http.StatusOK

	names := make([]string, 0, len(hc.Probes))
	for name := range hc.Probes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}
		if err := hc.Probes[name](ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == Path
}
