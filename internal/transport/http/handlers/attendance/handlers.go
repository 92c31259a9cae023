package attendancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/attendance"
	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *attendance.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)).Get("/statistics", h.handleStatistics)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite, h.Perms)).Post("/", h.handleRecordDay)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	query := r.URL.Query()
	filter := attendance.ListFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Office:     strings.TrimSpace(query.Get("office")),
		Status:     strings.TrimSpace(query.Get("status")),
	}
	if user.RoleName == auth.RoleRecorder {
		filter.Office = user.Office
	}
	if raw := query.Get("from"); raw != "" {
		from, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid from date", middleware.GetRequestID(r.Context()))
			return
		}
		filter.From = from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid to date", middleware.GetRequestID(r.Context()))
			return
		}
		filter.To = to
	}
	page := shared.ParsePagination(r, 100, 500)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	records, total, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	query := r.URL.Query()
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if raw := query.Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}
	if raw := query.Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			month = v
		}
	}
	if month < 1 || month > 12 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "month must be between 1 and 12", middleware.GetRequestID(r.Context()))
		return
	}

	office := strings.TrimSpace(query.Get("office"))
	if user.RoleName == auth.RoleRecorder {
		office = user.Office
	}

	stats, err := h.Service.Statistics(r.Context(), year, month, office)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_stats_failed", "failed to load statistics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

type daySheetRequest struct {
	Date    string             `json:"date"`
	Office  string             `json:"office"`
	Entries []attendance.Entry `json:"entries"`
}

func (h *Handler) handleRecordDay(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload daySheetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", payload.Date)
	if len(payload.Entries) == 0 {
		v.Add("entries", "at least one entry is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	office := strings.TrimSpace(payload.Office)
	if user.RoleName == auth.RoleRecorder {
		office = user.Office
	}

	result, err := h.Service.RecordDay(r.Context(), date, office, user.Email, payload.Entries)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrInvalidStatus):
			api.Fail(w, http.StatusBadRequest, "invalid_status", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, attendance.ErrInvalidCheckIn):
			api.Fail(w, http.StatusBadRequest, "invalid_check_in", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, attendance.ErrNoEntries):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "attendance_save_failed", "failed to save attendance", middleware.GetRequestID(r.Context()))
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "attendance.record", "attendance", payload.Date, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit attendance.record failed", "err", err)
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}
