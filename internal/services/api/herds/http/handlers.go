// Package http provides http transport for the herd registry
package http

import (
	stdhttp "net/http"

	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/services/api/herds/domain"
	svc "herdbook/internal/services/api/herds/service"
)

// Register mounts herd endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/create", h.create)
	httpkit.PostJSON[domain.MemberInput](r, "/members/add", h.addMember)
	httpkit.PostJSON[domain.MemberInput](r, "/members/remove", h.removeMember)
	httpkit.PostJSON[domain.MoveInput](r, "/members/move", h.moveMember)
	httpkit.PostJSON[domain.SplitInput](r, "/members/split", h.splitMembers)
	httpkit.PostJSON[domain.NameInput](r, "/members/view", h.viewMembers)
	httpkit.PostJSON[domain.MergeInput](r, "/merge", h.mergeInto)
	httpkit.PostJSON[domain.NameInput](r, "/delete", h.del)
	httpkit.PostJSON[domain.NameInput](r, "/restore", h.restore)
	httpkit.Get(r, "/active", h.listActive)
	httpkit.Get(r, "/archived", h.listArchived)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /herds/create Herds herdsCreate
// @Summary Create an empty active herd
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Herd"
// @Success 200 {object} domain.CreateResult "ok"
// @Router /herds/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	id, err := h.svc.Create(r.Context(), owner, in)
	if err != nil {
		return nil, err
	}
	return domain.CreateResult{HerdID: id}, nil
}

// swagger:route POST /herds/members/add Herds herdsAddMember
// @Summary Add an animal to a herd
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.MemberInput true "Membership"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/members/add [post]
func (h *handlers) addMember(r *stdhttp.Request, in domain.MemberInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.AddMember(r.Context(), owner, in.Herd, in.AnimalID); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/members/remove Herds herdsRemoveMember
// @Summary Remove an animal from a herd
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.MemberInput true "Membership"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/members/remove [post]
func (h *handlers) removeMember(r *stdhttp.Request, in domain.MemberInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.RemoveMember(r.Context(), owner, in.Herd, in.AnimalID); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/members/move Herds herdsMoveMember
// @Summary Move one animal between herds atomically
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.MoveInput true "Transfer"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/members/move [post]
func (h *handlers) moveMember(r *stdhttp.Request, in domain.MoveInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.MoveMember(r.Context(), owner, in.Source, in.Target, in.AnimalID); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/members/split Herds herdsSplitMembers
// @Summary Move a batch of animals, all or nothing; missing targets are created
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.SplitInput true "Batch transfer"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/members/split [post]
func (h *handlers) splitMembers(r *stdhttp.Request, in domain.SplitInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.SplitMembers(r.Context(), owner, in.Source, in.Target, in.AnimalIDs); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/merge Herds herdsMergeInto
// @Summary Union a herd's members into another and archive the donor
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.MergeInput true "Merge"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/merge [post]
func (h *handlers) mergeInto(r *stdhttp.Request, in domain.MergeInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.MergeInto(r.Context(), owner, in.Keep, in.Archive); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/delete Herds herdsDelete
// @Summary Archive an active herd, or purge an already archived one
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.NameInput true "Herd"
// @Success 200 {object} domain.DeleteResult "ok"
// @Router /herds/delete [post]
func (h *handlers) del(r *stdhttp.Request, in domain.NameInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	outcome, err := h.svc.Delete(r.Context(), owner, in.Name)
	if err != nil {
		return nil, err
	}
	return domain.DeleteResult{Outcome: outcome}, nil
}

// swagger:route POST /herds/restore Herds herdsRestore
// @Summary Bring an archived herd back to active, membership stays empty
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.NameInput true "Herd"
// @Success 200 {object} domain.Ack "ok"
// @Router /herds/restore [post]
func (h *handlers) restore(r *stdhttp.Request, in domain.NameInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Restore(r.Context(), owner, in.Name); err != nil {
		return nil, err
	}
	return domain.Ack{OK: true}, nil
}

// swagger:route POST /herds/members/view Herds herdsViewMembers
// @Summary Current member set of a herd
// @Tags Herds
// @Accept json
// @Produce json
// @Param payload body domain.NameInput true "Herd"
// @Success 200 {object} domain.MembersResult "ok"
// @Router /herds/members/view [post]
func (h *handlers) viewMembers(r *stdhttp.Request, in domain.NameInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	members, err := h.svc.ViewMembers(r.Context(), owner, in.Name)
	if err != nil {
		return nil, err
	}
	return domain.MembersResult{AnimalIDs: members}, nil
}

// swagger:route GET /herds/active Herds herdsListActive
// @Summary List the owner's active herds
// @Tags Herds
// @Produce json
// @Success 200 {array} domain.HerdSummary "ok"
// @Router /herds/active [get]
func (h *handlers) listActive(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListActive(r.Context(), owner)
}

// swagger:route GET /herds/archived Herds herdsListArchived
// @Summary List the owner's archived herds
// @Tags Herds
// @Produce json
// @Success 200 {array} domain.HerdSummary "ok"
// @Router /herds/archived [get]
func (h *handlers) listArchived(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListArchived(r.Context(), owner)
}
