package handlers

import (
	"net/http"

	"campushire/internal/app"
	"campushire/internal/http/response"
)

type AdminHandler struct {
	admin *app.AdminService
}

func NewAdminHandler(admin *app.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.admin.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dashboard)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.admin.Analytics(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, analytics)
}
