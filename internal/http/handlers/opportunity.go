package handlers

import (
	"net/http"
	"time"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/domain/opportunity"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type OpportunityHandler struct {
	opportunities *app.OpportunityService
}

func NewOpportunityHandler(opportunities *app.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

type eligibilityRequest struct {
	MinCGR   float64  `json:"minCGR" validate:"gte=0,lte=10"`
	Branches []string `json:"branches"`
	Batches  []string `json:"batches"`
}

type createOpportunityRequest struct {
	CompanyName  string              `json:"companyName" validate:"required"`
	Role         string              `json:"role" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Requirements string              `json:"requirements"`
	Location     string              `json:"location"`
	Salary       string              `json:"salary"`
	Deadline     time.Time           `json:"deadline" validate:"required"`
	Eligibility  *eligibilityRequest `json:"eligibility"`
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createOpportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input := app.CreateOpportunityInput{
		CompanyName:  req.CompanyName,
		Role:         req.Role,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Deadline:     req.Deadline,
	}
	if req.Eligibility != nil {
		input.Eligibility = &opportunity.Eligibility{
			MinCGR:   req.Eligibility.MinCGR,
			Branches: req.Eligibility.Branches,
			Batches:  req.Eligibility.Batches,
		}
	}
	created, err := h.opportunities.Create(r.Context(), input, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.opportunities.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	opportunityID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, common.NewValidationError("Invalid Opportunity ID", nil))
		return
	}
	item, err := h.opportunities.Get(r.Context(), opportunityID, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type updateOpportunityRequest struct {
	CompanyName  *string             `json:"companyName"`
	Role         *string             `json:"role"`
	Description  *string             `json:"description"`
	Requirements *string             `json:"requirements"`
	Location     *string             `json:"location"`
	Salary       *string             `json:"salary"`
	Deadline     *time.Time          `json:"deadline"`
	Eligibility  *eligibilityRequest `json:"eligibility"`
	IsActive     *bool               `json:"isActive"`
}

func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateOpportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	patch := opportunity.Update{
		CompanyName:  req.CompanyName,
		Role:         req.Role,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Deadline:     req.Deadline,
		IsActive:     req.IsActive,
	}
	if req.Eligibility != nil {
		patch.Eligibility = &opportunity.Eligibility{
			MinCGR:   req.Eligibility.MinCGR,
			Branches: req.Eligibility.Branches,
			Batches:  req.Eligibility.Batches,
		}
	}
	updated, err := h.opportunities.Update(r.Context(), opportunityID, patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.opportunities.Delete(r.Context(), opportunityID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Opportunity and related applications deleted successfully"})
}

func (h *OpportunityHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.opportunities.ListApplicants(r.Context(), opportunityID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
