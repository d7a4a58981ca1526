// Package http provides http transport for the activity feed
package http

import (
	stdhttp "net/http"

	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/services/api/activity/domain"
	svc "herdbook/internal/services/api/activity/service"
)

// Register mounts activity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /activity/recent Activity activityRecent
// @Summary Latest herd mutation events for the caller, newest first
// @Tags Activity
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Filter"
// @Success 200 {array} domain.EventView "ok"
// @Router /activity/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), owner, in)
}
