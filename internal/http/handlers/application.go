package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/app"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/middleware"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	OfferID     string   `json:"offer_id"`
	CVFileName  string   `json:"cv_file_name"`
	CVData      []byte   `json:"cv_data"`
	CoverLetter string   `json:"cover_letter"`
	ProjectIDs  []string `json:"project_ids"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.OfferID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"offer_id": "offer_id is required"}))
		return
	}
	offerID, err := common.ParseUUID(req.OfferID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"offer_id": "invalid uuid"}))
		return
	}
	projectIDs := make([]common.UUID, 0, len(req.ProjectIDs))
	for _, raw := range req.ProjectIDs {
		parsed, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"project_ids": "invalid uuid"}))
			return
		}
		projectIDs = append(projectIDs, parsed)
	}
	if h.limiter != nil {
		key := "apply:" + offerID.String() + ":" + studentID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), studentID, app.ApplyInput{
		OfferID:     offerID,
		CVFileName:  req.CVFileName,
		CVData:      req.CVData,
		CoverLetter: req.CoverLetter,
		ProjectIDs:  projectIDs,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	created.CVData = nil
	response.JSON(w, http.StatusCreated, created)
}

// List dispatches on the authenticated role: students get their own
// applications, companies get applications against their offers, admins get
// everything.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var items []application.Application
	var err error
	switch actorRole {
	case user.RoleStudent:
		items, err = h.applications.ListByStudent(r.Context(), actorID)
	case user.RoleCompany:
		items, err = h.applications.ListByCompany(r.Context(), actorID)
	case user.RoleAdmin:
		items, err = h.applications.ListAll(r.Context())
	default:
		err = common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	for i := range items {
		items[i].CVData = nil
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByOffer(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	offerID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByOffer(r.Context(), offerID, actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	for i := range items {
		items[i].CVData = nil
	}
	response.JSON(w, http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), applicationID, application.Status(req.Status), actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated.CVData = nil
	response.JSON(w, http.StatusOK, updated)
}

// DownloadCV streams the stored CV with its original filename.
func (h *ApplicationHandler) DownloadCV(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.GetCV(r.Context(), applicationID, actorID, actorRole)
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.CVFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(item.CVData)
}
