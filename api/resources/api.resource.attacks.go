// FilePath: api/resources/api.resource.attacks.go
package resources

import (
	"net/http"

	"github.com/itsatony/swat_playback/internal/service"
)

// AttackHandlers encapsulates the attack catalog handlers
type AttackHandlers struct {
	service *service.Service
}

// @Summary List attacks
// @Description Attack intervals sorted by id. startTime can be passed to /data/by-timestamp.
// @Tags attacks
// @Produce json
// @Success 200 {array} models.AttackSummary
// @Failure 503 {object} errors.APIError
// @Router /attacks [get]
func (h *AttackHandlers) ListAttacks(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	attacks, err := h.service.Attacks(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID, "failed to list attacks")
		return
	}

	respondWithJSON(w, http.StatusOK, attacks)
}
