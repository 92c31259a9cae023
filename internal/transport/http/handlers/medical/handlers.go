package medicalhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/medical"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *medical.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *medical.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/medical", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermMedicalRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermMedicalRead, h.Perms)).Get("/{leaveID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermMedicalWrite, h.Perms)).Post("/", h.handleRegister)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	query := r.URL.Query()
	filter := medical.ListFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Type:       strings.TrimSpace(query.Get("type")),
		Office:     strings.TrimSpace(query.Get("office")),
	}
	if user.RoleName == auth.RoleRecorder {
		filter.Office = user.Office
	}
	if raw := query.Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Year = v
		}
	}
	page := shared.ParsePagination(r, 100, 500)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	leaves, total, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "medical_list_failed", "failed to list medical leaves", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, leaves, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	leaveID := chi.URLParam(r, "leaveID")
	lv, err := h.Service.Get(r.Context(), leaveID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "medical leave not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lv, middleware.GetRequestID(r.Context()))
}

type registerRequest struct {
	EmployeeID      string `json:"employeeId"`
	Type            string `json:"type"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Diagnosis       string `json:"diagnosis"`
	ReferenceNumber string `json:"referenceNumber"`
	Institution     string `json:"institution"`
	DocumentURL     string `json:"documentUrl"`
	Office          string `json:"office"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("diagnosis", payload.Diagnosis, "diagnosis is required")
	v.Enum("type", payload.Type, medical.Types, "must be a valid medical leave type")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	office := strings.TrimSpace(payload.Office)
	if user.RoleName == auth.RoleRecorder {
		office = user.Office
	}

	scope := auth.OfficeScope(user.RoleName, user.Office)
	lv, err := h.Service.Register(r.Context(), payload.EmployeeID, payload.Type, payload.Diagnosis,
		payload.ReferenceNumber, payload.Institution, payload.DocumentURL, office, user.Email, scope, start, end)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrOfficeScope):
			api.Fail(w, http.StatusForbidden, "forbidden", "employee is outside your office", middleware.GetRequestID(r.Context()))
		case errors.Is(err, medical.ErrInvalidType), errors.Is(err, medical.ErrInvalidRange), errors.Is(err, medical.ErrDiagnosisRequired):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "medical_register_failed", "failed to register medical leave", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "medical.register", "medical", lv.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit medical.register failed", "err", err)
	}
	api.Created(w, lv, middleware.GetRequestID(r.Context()))
}
