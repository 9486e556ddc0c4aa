package handlers

import (
	"net/http"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/app"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
	stats *app.StatsService
}

func NewUserHandler(users *app.UserService, stats *app.StatsService) *UserHandler {
	return &UserHandler{users: users, stats: stats}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type createUserResponse struct {
	User            *user.User `json:"user"`
	CredentialsSent bool       `json:"credentials_sent"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.users.Create(r.Context(), app.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, createUserResponse{User: result.User, CredentialsSent: result.CredentialsSent})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.users.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stats.Overview(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, overview)
}
