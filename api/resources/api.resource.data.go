// FilePath: api/resources/api.resource.data.go
package resources

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/service"
)

// DataHandlers encapsulates the dataset playback HTTP handlers
type DataHandlers struct {
	service *service.Service
	decoder *schema.Decoder
}

// @Summary Dataset summary
// @Description Total record count, first and last timestamps and the device columns
// @Tags data
// @Produce json
// @Success 200 {object} models.DatasetInfo
// @Failure 503 {object} errors.APIError
// @Router /data/info [get]
func (h *DataHandlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	info, err := h.service.Info(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID, "failed to read dataset info")
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

// @Summary Record by index
// @Description Record at a playback position with its predecessor, per-device change and active attack
// @Tags data
// @Produce json
// @Param index path int true "Record index"
// @Success 200 {object} models.RecordView
// @Failure 404 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /data/by-index/{index} [get]
func (h *DataHandlers) GetByIndex(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	raw := mux.Vars(r)["index"]

	index, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, errors.NewIndexOutOfRangeError("Index out of bounds", err).
			WithDetails(map[string]string{"index": raw}).
			WithRequestID(requestID))
		return
	}

	view, err := h.service.ByIndex(r.Context(), index)
	if err != nil {
		respondWithServiceError(w, err, requestID, "failed to read record")
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Nearest record to a time
// @Description Resolves a DD/MM/YYYY time of day to the index of the closest record
// @Tags data
// @Produce json
// @Param time query string true "Wall-clock time, e.g. 28/12/2015 10:29:14 AM"
// @Success 200 {object} models.TimestampMatch
// @Failure 400 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /data/by-timestamp [get]
func (h *DataHandlers) GetByTimestamp(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var q models.TimestampQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewMalformedTimestampError("invalid query", err).WithRequestID(requestID))
		return
	}

	match, err := h.service.ByTimestamp(r.Context(), q.Time)
	if err != nil {
		respondWithServiceError(w, err, requestID, "failed to resolve timestamp")
		return
	}

	respondWithJSON(w, http.StatusOK, match)
}

// @Summary Device history
// @Description Chart samples of one device ending at endIndex. mode=index (default) reads seconds as a record count, mode=time as a time span.
// @Tags data
// @Produce json
// @Param deviceId query string true "Device identifier"
// @Param endIndex query int true "Last record index"
// @Param seconds query int true "Window length"
// @Param mode query string false "index or time"
// @Success 200 {array} models.HistoryPoint
// @Failure 400 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /data/history [get]
func (h *DataHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var q models.HistoryQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewInvalidParameterError("invalid query", err).WithRequestID(requestID))
		return
	}

	points, err := h.service.History(r.Context(), q)
	if err != nil {
		respondWithServiceError(w, err, requestID, "failed to read history")
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}
