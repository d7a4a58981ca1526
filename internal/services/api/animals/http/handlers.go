// Package http provides http transport for the animal register
package http

import (
	stdhttp "net/http"

	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/services/api/animals/domain"
	svc "herdbook/internal/services/api/animals/service"
)

// Register mounts animal endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RegisterInput](r, "/register", h.register)
	httpkit.PostJSON[domain.LookupInput](r, "/lookup", h.lookup)
	httpkit.Get(r, "/", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /animals/register Animals animalsRegister
// @Summary Register an animal and mint its identifier
// @Tags Animals
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "Animal"
// @Success 200 {object} domain.RegisterResult "ok"
// @Router /animals/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	id, err := h.svc.Register(r.Context(), owner, in)
	if err != nil {
		return nil, err
	}
	return domain.RegisterResult{AnimalID: id}, nil
}

// swagger:route POST /animals/lookup Animals animalsLookup
// @Summary Find one of the owner's animals by ear tag
// @Tags Animals
// @Accept json
// @Produce json
// @Param payload body domain.LookupInput true "Tag"
// @Success 200 {object} domain.AnimalView "ok"
// @Router /animals/lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.LookupByTag(r.Context(), owner, in.Tag)
}

// swagger:route GET /animals Animals animalsList
// @Summary List the owner's registered animals
// @Tags Animals
// @Produce json
// @Success 200 {array} domain.AnimalView "ok"
// @Router /animals [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), owner)
}
