// FilePath: api/resources/api.resource.system.go
package resources

import (
	"net/http"

	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/service"
	"github.com/swaggo/swag"
)

// SystemHandlers serves health and API documentation
type SystemHandlers struct {
	service *service.Service
}

// @Summary Health check
// @Description Dataset load state, record counts and version
// @Tags system
// @Produce json
// @Success 200 {object} models.LoadStatus
// @Router /health [get]
func (h *SystemHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Status())
}

// SwaggerDoc serves the registered swagger document
func (h *SystemHandlers) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewInternalError("swagger document not registered", err).WithRequestID(requestIDFrom(r)))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
