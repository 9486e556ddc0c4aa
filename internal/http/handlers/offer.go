package handlers

import (
	"net/http"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/app"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/middleware"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/response"
)

type OfferHandler struct {
	offers *app.OfferService
}

func NewOfferHandler(offers *app.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type offerRequest struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	Duration     string `json:"duration"`
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.offers.Create(r.Context(), companyID, app.OfferInput{
		Title:        req.Title,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Duration:     req.Duration,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *OfferHandler) Approve(w http.ResponseWriter, r *http.Request) {
	offerID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.offers.Approve(r.Context(), offerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	offerID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.offers.Reject(r.Context(), offerID, req.Reason)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *OfferHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	items, err := h.offers.ListApproved(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OfferHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.offers.ListPending(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OfferHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.offers.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offerID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	// Admins see everything and companies see their own offers in any
	// moderation state; everyone else only sees approved listings.
	switch actorRole {
	case user.RoleAdmin:
		item, err := h.offers.GetAny(r.Context(), offerID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	case user.RoleCompany:
		item, err := h.offers.GetForCompany(r.Context(), actorID, offerID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	default:
		item, err := h.offers.GetApproved(r.Context(), offerID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	}
}
