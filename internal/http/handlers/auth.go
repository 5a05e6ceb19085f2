package handlers

import (
	"net/http"
	"time"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/domain/user"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Branch   string  `json:"branch"`
	Batch    string  `json:"batch"`
	CGR      float64 `json:"cgr" validate:"gte=0,lte=10"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("register:"+middleware.ClientIP(r), 5, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Register(r.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Branch:   req.Branch,
		Batch:    req.Batch,
		CGR:      req.CGR,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("login:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name           *string  `json:"name"`
	Branch         *string  `json:"branch"`
	Batch          *string  `json:"batch"`
	CGR            *float64 `json:"cgr"`
	ResumeLink     *string  `json:"resumeLink"`
	ProfilePicture *string  `json:"profilePicture"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.auth.UpdateProfile(r.Context(), userID, user.ProfileUpdate{
		Name:           req.Name,
		Branch:         req.Branch,
		Batch:          req.Batch,
		CGR:            req.CGR,
		ResumeLink:     req.ResumeLink,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
