// Package http provides http transport for weight records
package http

import (
	stdhttp "net/http"

	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/services/api/weights/domain"
	svc "herdbook/internal/services/api/weights/service"
)

// Register mounts weight endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RecordInput](r, "/record", h.record)
	httpkit.PostJSON[domain.HistoryInput](r, "/history", h.history)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /weights/record Weights weightsRecord
// @Summary Record a weight for an owned animal
// @Tags Weights
// @Accept json
// @Produce json
// @Param payload body domain.RecordInput true "Measurement"
// @Success 200 {object} domain.RecordResult "ok"
// @Router /weights/record [post]
func (h *handlers) record(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	id, err := h.svc.Record(r.Context(), owner, in)
	if err != nil {
		return nil, err
	}
	return domain.RecordResult{WeightID: id}, nil
}

// swagger:route POST /weights/history Weights weightsHistory
// @Summary Weight history for an owned animal, newest first
// @Tags Weights
// @Accept json
// @Produce json
// @Param payload body domain.HistoryInput true "Animal"
// @Success 200 {array} domain.WeightView "ok"
// @Router /weights/history [post]
func (h *handlers) history(r *stdhttp.Request, in domain.HistoryInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.History(r.Context(), owner, in.AnimalID)
}
