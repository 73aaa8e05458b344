package httpx

import "net/http"

// healthHandler answers liveness probes. It deliberately does not call the
// backend: the UI being up is independent of the backend being up.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
