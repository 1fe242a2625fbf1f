// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/joblens/internal/domain/record"
)

// RecordDependencies defines the interface for record ingestion.
type RecordDependencies interface {
	Submit(ctx context.Context, raw record.Raw) bool
	SubmitBatch(ctx context.Context, raws []record.Raw) int
}

// RecordsHandler handles posting-record submissions.
type RecordsHandler struct {
	deps RecordDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// ingestResponse acknowledges a submission batch.
type ingestResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// HandlePostRecords handles POST /records requests. The body is either one
// JSON object or an array of objects; field contents are not validated here
// because the pipeline tolerates any field shape.
func (h *RecordsHandler) HandlePostRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_records"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	raws, err := rawsFromPayload(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	accepted := h.deps.SubmitBatch(r.Context(), raws)
	if accepted == 0 && len(raws) > 0 {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse{
		Status:   "accepted",
		Accepted: accepted,
		Rejected: len(raws) - accepted,
	})
}

// rawsFromPayload extracts records from a decoded body: a single object or
// an array of objects. Non-object array elements are rejected outright here,
// unlike the startup loader, because the submitter is live and can fix them.
func rawsFromPayload(payload any) ([]record.Raw, error) {
	switch v := payload.(type) {
	case map[string]any:
		return []record.Raw{record.Raw(v)}, nil
	case []any:
		out := make([]record.Raw, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, ErrBadRequest
			}
			out = append(out, record.Raw(obj))
		}
		return out, nil
	default:
		return nil, ErrBadRequest
	}
}
