package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/leave"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *leave.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/quota/{employeeID}", h.handleQuota)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	query := r.URL.Query()
	filter := leave.ListFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Status:     strings.TrimSpace(query.Get("status")),
		Office:     strings.TrimSpace(query.Get("office")),
	}
	if user.RoleName == auth.RoleRecorder {
		filter.Office = user.Office
	}
	page := shared.ParsePagination(r, 100, 500)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	requests, total, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Get(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleQuota(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	remaining, err := h.Service.Quota(r.Context(), employeeID, time.Now())
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"remainingDays": remaining}, middleware.GetRequestID(r.Context()))
}

type submitRequest struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("reason", payload.Reason, "reason is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	scope := auth.OfficeScope(user.RoleName, user.Office)
	req, err := h.Service.Submit(r.Context(), payload.EmployeeID, payload.Reason, user.Email, scope, start, end)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrOfficeScope):
			api.Fail(w, http.StatusForbidden, "forbidden", "employee is outside your office", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrInsufficientQuota):
			api.Fail(w, http.StatusConflict, "insufficient_quota", "not enough leave days remaining", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrOverlap):
			api.Fail(w, http.StatusConflict, "overlapping_request", "an existing request overlaps the proposed dates", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrNoBusinessDays):
			api.Fail(w, http.StatusBadRequest, "no_business_days", "range contains no business days", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrInvalidRange), errors.Is(err, leave.ErrEmptyReason):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_submit_failed", "failed to submit leave request", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "leave.submit", "leave", req.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit leave.submit failed", "err", err)
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Approve(r.Context(), requestID, user.Email, payload.Comment)
	if err != nil {
		h.failDecision(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "leave.approve", "leave", requestID, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit leave.approve failed", "err", err)
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Reject(r.Context(), requestID, user.Email, payload.Comment)
	if err != nil {
		h.failDecision(w, r, err)
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "leave.reject", "leave", requestID, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit leave.reject failed", "err", err)
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failDecision(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "request is not pending", middleware.GetRequestID(r.Context()))
	case errors.Is(err, leave.ErrInsufficientQuota):
		api.Fail(w, http.StatusConflict, "insufficient_quota", "not enough leave days remaining", middleware.GetRequestID(r.Context()))
	case errors.Is(err, leave.ErrCommentRequired):
		api.Fail(w, http.StatusBadRequest, "comment_required", "a rejection comment is required", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
	}
}
