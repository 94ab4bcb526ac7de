package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/internal/repository"
	"github.com/rechargbatt/backend/internal/service"
	"github.com/rechargbatt/backend/pkg/auth"
)

// adminKeyHeader carries the static dashboard API key.
const adminKeyHeader = "X-Admin-Key"

// AdminConfig carries the credentials and posture flags for the admin
// surface. It is passed in explicitly rather than read from the
// environment at call time.
type AdminConfig struct {
	// Password is the operator login password. Empty means login is
	// misconfigured and always answers 500.
	Password string
	// APIKey is the static dashboard key checked against X-Admin-Key.
	APIKey string
	// SessionSecret signs the admin session cookie.
	SessionSecret []byte
	// DevBypass skips authorization entirely. Only honored outside
	// production.
	DevBypass bool
	// Env is the deployment posture ("production" hardens cookies and
	// disables the dev bypass).
	Env string
}

// AdminHandler exposes the operator dashboard API: login/logout/session
// and the filtered request listing.
type AdminHandler struct {
	requestService service.RequestService
	cfg            AdminConfig
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(requestService service.RequestService, cfg AdminConfig) *AdminHandler {
	return &AdminHandler{requestService: requestService, cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
}

type okResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Login handles POST /api/admin/login. On success it sets the signed
// HttpOnly session cookie protecting the dashboard.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Password == "" {
		writeJSON(w, http.StatusInternalServerError,
			okResponse{Error: "ADMIN_PASSWORD is not configured"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, okResponse{Error: "invalid JSON body"})
		return
	}

	if req.Password != h.cfg.Password {
		writeJSON(w, http.StatusUnauthorized, okResponse{Error: "invalid password"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    auth.CreateAdminToken(h.cfg.SessionSecret),
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.Env == "production",
	})
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Logout handles POST /api/admin/logout by expiring the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

type sessionResponse struct {
	OK       bool `json:"ok"`
	IsLogged bool `json:"isLogged"`
}

// Me handles GET /api/admin/me — a side-effect-free session probe for
// the dashboard's login state.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{OK: true, IsLogged: h.isLogged(r)})
}

// isLogged reports whether the request carries a valid session cookie.
func (h *AdminHandler) isLogged(r *http.Request) bool {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil || cookie.Value == "" {
		return false
	}
	return auth.VerifyAdminToken(cookie.Value, h.cfg.SessionSecret) == nil
}

// isDevBypass reports whether the trusted local-development shortcut
// applies: never in production, and only for an explicit opt-in flag or a
// loopback Host.
func (h *AdminHandler) isDevBypass(r *http.Request) bool {
	if h.cfg.Env == "production" {
		return false
	}
	if h.cfg.DevBypass {
		return true
	}
	host := strings.ToLower(r.Host)
	return strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1")
}

// authFailure describes a rejected admin call.
type authFailure struct {
	status  int
	message string
	hint    string
}

// authorize applies the admin authorization precedence: dev bypass, then
// session cookie, then the static API key.
func (h *AdminHandler) authorize(r *http.Request) *authFailure {
	if h.isDevBypass(r) {
		return nil
	}
	if h.isLogged(r) {
		return nil
	}

	if h.cfg.APIKey == "" {
		return &authFailure{
			status:  http.StatusInternalServerError,
			message: "ADMIN_API_KEY is not configured",
		}
	}
	got := strings.TrimSpace(r.Header.Get(adminKeyHeader))
	if got == "" || got != h.cfg.APIKey {
		return &authFailure{
			status:  http.StatusUnauthorized,
			message: "unauthorized",
			hint:    "log in or send a valid " + adminKeyHeader + " header",
		}
	}
	return nil
}

// listResponse is the JSON response for GET /api/admin/requests.
type listResponse struct {
	Success bool             `json:"success"`
	Data    []*model.Request `json:"data"`
}

// ListRequests handles GET /api/admin/requests?type=&status=&q= for the
// dashboard. Filtering happens server-side in the repository.
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	if fail := h.authorize(r); fail != nil {
		writeJSON(w, fail.status, failureResponse{Error: fail.message, Hint: fail.hint})
		return
	}

	q := r.URL.Query()
	opts := model.RequestListOptions{
		Type:   strings.ToLower(q.Get("type")),
		Status: strings.ToLower(q.Get("status")),
		Search: strings.TrimSpace(q.Get("q")),
	}

	requests, err := h.requestService.List(r.Context(), opts)
	if err != nil {
		slog.Error("admin list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failureResponse{Error: err.Error()})
		return
	}

	// Return [] not null for empty lists
	if requests == nil {
		requests = []*model.Request{}
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: requests})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// UpdateStatus handles PATCH /api/admin/requests/{id}/status, moving a
// request along the new → contacted → confirmed → done workflow.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if fail := h.authorize(r); fail != nil {
		writeJSON(w, fail.status, failureResponse{Error: fail.message, Hint: fail.hint})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failureResponse{Error: "invalid JSON body"})
		return
	}

	err := h.requestService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	case errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, failureResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, failureResponse{Error: "request not found"})
	default:
		slog.Error("admin status update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failureResponse{Error: err.Error()})
	}
}
