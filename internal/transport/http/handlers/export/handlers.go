package exporthandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/export"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *export.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *export.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/export", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermExportRun, h.Perms)).Post("/run", h.handleRun)
		r.With(middleware.RequirePermission(auth.PermExportRun, h.Perms)).Get("/status", h.handleStatus)
	})
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Run(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to run backup export", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.Email, "export.run", "export", result.FilePath, middleware.GetRequestID(r.Context()), shared.ClientIP(r)); err != nil {
		slog.Warn("audit export.run failed", "err", err)
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.Status(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_status_failed", "failed to load export status", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, status, middleware.GetRequestID(r.Context()))
}
