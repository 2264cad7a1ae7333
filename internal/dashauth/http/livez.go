package http

import (
	"net/http"
	"time"

	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dashsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, dashsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
