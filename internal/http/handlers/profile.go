package handlers

import (
	"net/http"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/app"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/middleware"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileResponse struct {
	StudentID         string            `json:"student_id"`
	CareerGoal        string            `json:"career_goal"`
	Projects          []profile.Project `json:"projects"`
	IsProfileComplete bool              `json:"is_profile_complete"`
}

func toProfileResponse(p *profile.StudentProfile) profileResponse {
	return profileResponse{
		StudentID:         p.StudentID.String(),
		CareerGoal:        p.CareerGoal,
		Projects:          p.Projects,
		IsProfileComplete: p.IsComplete(),
	}
}

// GetOwn serves the student's own profile.
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	stored, err := h.profiles.Get(r.Context(), actorID, actorRole, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(stored))
}

// GetByStudent serves any student's profile to an admin.
func (h *ProfileHandler) GetByStudent(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	studentID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	stored, err := h.profiles.Get(r.Context(), actorID, actorRole, studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(stored))
}

type careerGoalRequest struct {
	CareerGoal string `json:"career_goal"`
}

func (h *ProfileHandler) SetCareerGoal(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req careerGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.SetCareerGoal(r.Context(), actorID, actorRole, actorID, req.CareerGoal); err != nil {
		response.Error(w, err)
		return
	}
	stored, err := h.profiles.Get(r.Context(), actorID, actorRole, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(stored))
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
}

func (h *ProfileHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.profiles.AddProject(r.Context(), actorID, actorRole, actorID, app.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	projectID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var patch profile.ProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.UpdateProject(r.Context(), actorID, actorRole, actorID, projectID, patch); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *ProfileHandler) RemoveProject(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	projectID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.profiles.RemoveProject(r.Context(), actorID, actorRole, actorID, projectID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func actorFromContext(r *http.Request) (common.UUID, user.Role, bool) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	actorRole, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	return actorID, actorRole, true
}
