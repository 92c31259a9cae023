package bonushandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/bonus"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *bonus.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *bonus.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bonus", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/config", h.handleGetConfig)
		r.With(middleware.RequirePermission(auth.PermBonusConfigure, h.Perms)).Put("/config", h.handleUpdateConfig)
		r.With(middleware.RequirePermission(auth.PermBonusCompute, h.Perms)).Post("/compute", h.handleCompute)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/records", h.handleListRecords)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/records/export", h.handleExportCSV)
		r.With(middleware.RequirePermission(auth.PermBonusRead, h.Perms)).Get("/report", h.handleReportPDF)
	})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.GetConfig(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_config_failed", "failed to load bonus configuration", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

type configRequest struct {
	BaseAmount          string `json:"baseAmount"`
	LatePenalty         string `json:"latePenalty"`
	AbsencePenalty      string `json:"absencePenalty"`
	MinimumPresenceDays int    `json:"minimumPresenceDays"`
}

func (h *Handler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload configRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	base, err := decimal.NewFromString(strings.TrimSpace(payload.BaseAmount))
	if err != nil {
		v.Add("baseAmount", "must be a decimal amount")
	}
	late, err := decimal.NewFromString(strings.TrimSpace(payload.LatePenalty))
	if err != nil {
		v.Add("latePenalty", "must be a decimal amount")
	}
	absence, err := decimal.NewFromString(strings.TrimSpace(payload.AbsencePenalty))
	if err != nil {
		v.Add("absencePenalty", "must be a decimal amount")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	cfg := bonus.Config{
		BaseAmount:          base,
		LatePenalty:         late,
		AbsencePenalty:      absence,
		MinimumPresenceDays: payload.MinimumPresenceDays,
		UpdatedBy:           user.Email,
	}
	if err := h.Service.Configure(r.Context(), cfg); err != nil {
		if errors.Is(err, bonus.ErrInvalidConfig) {
			api.Fail(w, http.StatusBadRequest, "invalid_config", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "bonus_config_failed", "failed to update bonus configuration", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "bonus.configure", "bonus", "", middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit bonus.configure failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

type computeRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Office string `json:"office"`
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload computeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.ComputePeriod(r.Context(), payload.Year, payload.Month, payload.Office, user.Email)
	if err != nil {
		if errors.Is(err, bonus.ErrInvalidPeriod) {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "year and month must identify a valid period", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "bonus_compute_failed", "failed to compute bonuses", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "bonus.compute", "bonus",
		fmt.Sprintf("%d-%02d", payload.Year, payload.Month), middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit bonus.compute failed", "err", err)
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.recordFilter(w, r)
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	records, total, err := h.Service.ListRecords(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_list_failed", "failed to list bonus records", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.recordFilter(w, r)
	if !ok {
		return
	}
	filter.Limit = 10000

	records, _, err := h.Service.ListRecords(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_export_failed", "failed to export bonus records", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=bonus-records.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee", "office", "year", "month", "present_days", "late_days", "absent_days", "amount"}); err != nil {
		slog.Warn("bonus export csv header write failed", "err", err)
	}
	for _, rec := range records {
		if err := writer.Write([]string{
			rec.FullName,
			rec.Office,
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Month),
			strconv.Itoa(rec.PresentDays),
			strconv.Itoa(rec.LateDays),
			strconv.Itoa(rec.AbsentDays),
			rec.Amount.StringFixed(2),
		}); err != nil {
			slog.Warn("bonus export csv row write failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("bonus export csv flush failed", "err", err)
	}
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
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

	path, err := h.Service.GeneratePeriodReportPDF(r.Context(), year, month, strings.TrimSpace(query.Get("office")))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_report_failed", "failed to generate bonus report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=bonus_%d_%02d.pdf", year, month))
	http.ServeFile(w, r, path)
}

func (h *Handler) recordFilter(w http.ResponseWriter, r *http.Request) (bonus.ListFilter, bool) {
	query := r.URL.Query()
	filter := bonus.ListFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Office:     strings.TrimSpace(query.Get("office")),
	}
	if raw := query.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid year", middleware.GetRequestID(r.Context()))
			return bonus.ListFilter{}, false
		}
		filter.Year = v
	}
	if raw := query.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid month", middleware.GetRequestID(r.Context()))
			return bonus.ListFilter{}, false
		}
		filter.Month = v
	}
	return filter, true
}
