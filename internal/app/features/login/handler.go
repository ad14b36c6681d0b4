// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/revenuedash/internal/app/store/users"
	"github.com/dalemusser/revenuedash/internal/app/system/auditlog"
	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"github.com/dalemusser/revenuedash/internal/app/system/navigation"
	"github.com/dalemusser/revenuedash/internal/app/system/ratelimit"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"github.com/dalemusser/revenuedash/internal/app/system/viewdata"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Authenticator verifies a login id and password.
type Authenticator interface {
	Authenticate(ctx context.Context, loginID, password string) (*models.User, error)
}

type Handler struct {
	Users      Authenticator
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter // optional
	Audit      *auditlog.Logger        // optional
	Log        *zap.Logger

	render func(w http.ResponseWriter, r *http.Request, name string, data any)
}

func NewHandler(users Authenticator, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		Log:        logger,
		render: func(w http.ResponseWriter, r *http.Request, name string, data any) {
			templates.Render(w, r, name, data)
		},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	LoginID   string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data.", http.StatusBadRequest)
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if loginID == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your login ID and password.", loginID, ret)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(r, loginID) {
		h.Log.Warn("login throttled",
			zap.String("login_id", loginID),
			zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginThrottled(r.Context(), r, loginID)
		w.WriteHeader(http.StatusTooManyRequests)
		h.renderFormWithError(w, r, "Too many sign-in attempts. Please wait a minute and try again.", loginID, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, loginID, password)
	switch {
	case errors.Is(err, userstore.ErrInvalidCredentials):
		h.Log.Info("login failed", zap.String("login_id", loginID))
		h.Audit.LoginFailed(r.Context(), r, loginID)
		h.renderFormWithError(w, r, "Login ID or password is incorrect.", loginID, ret)
		return
	case err != nil:
		h.Log.Error("login: authenticate", zap.String("login_id", loginID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		h.renderFormWithError(w, r, "A server error occurred. Please try again.", loginID, ret)
		return
	}

	su := &auth.SessionUser{
		ID:       u.ID.Hex(),
		Name:     u.FullName,
		LoginID:  u.LoginID,
		TenantID: u.TenantID,
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(loginID)
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("login: save session", zap.Error(err))
		http.Error(w, "A server error occurred.", http.StatusInternalServerError)
		return
	}

	h.Audit.LoginSuccess(r.Context(), r, su.ID, u.LoginID, u.TenantID)
	h.Log.Info("login succeeded",
		zap.String("login_id", u.LoginID),
		zap.String("tenant_id", u.TenantID))

	dest := navigation.SafeBackURL(r, navigation.AfterLogin)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, loginID, returnURL string) {
	h.render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: returnURL,
	})
}
