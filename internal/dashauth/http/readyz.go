package http

import (
	"net/http"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/store"
	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the handshake ledger database and reports the signing mode.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dashsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	dashsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	sessions *sessionx.Service,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dashsdk.HealthChecks{
			Database: "ok",
			Signer:   signerStatus(sessions),
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, dashsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func signerStatus(sessions *sessionx.Service) string {
	if sessions.CanIssue() {
		return sessions.Mode().Alg()
	}
	return sessions.Mode().Alg() + " (verify-only)"
}
