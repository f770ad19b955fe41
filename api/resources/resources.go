// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/itsatony/swat_playback/api/middleware"
	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/service"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Data    *DataHandlers
	Attacks *AttackHandlers
	System  *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *service.Service) *Resources {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Resources{
		Data:    &DataHandlers{service: svc, decoder: decoder},
		Attacks: &AttackHandlers{service: svc},
		System:  &SystemHandlers{service: svc},
	}
}

func requestIDFrom(r *http.Request) string {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		return id
	}
	return nuts.NID("req", 12)
}

// respondWithServiceError passes typed service errors through and wraps the rest
func respondWithServiceError(w http.ResponseWriter, err error, requestID, fallback string) {
	if apiErr := errors.AsAPIError(err); apiErr != nil {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError(fallback, err).WithRequestID(requestID))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
