package middleware

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/guard"
	"meenora.in/store/internal/store/session"
)

// GuardConfig points the guard's redirects at the right portal. The admin
// mount uses its own login page; everything else shares the storefront one.
type GuardConfig struct {
	LoginPath string
	RoleHome  string
	Logger    *zap.Logger
}

// Guard evaluates the route requirement against the session on every request.
// Visitors failing the auth requirement land on the login page with the
// original path preserved; authenticated non-admins hitting an admin route
// land on their own home page.
func Guard(req guard.Requirement, cfg GuardConfig) func(http.Handler) http.Handler {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	roleHome := cfg.RoleHome
	if roleHome == "" {
		roleHome = "/dashboard"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				sess = &session.Session{}
			}

			decision := guard.Decide(sess.State(), sess.User(), req)
			switch decision {
			case guard.Allow:
				next.ServeHTTP(w, r)
			case guard.Defer:
				// Cookie sessions resolve synchronously, so a deferred
				// decision means the state machine is mid-transition.
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			case guard.RedirectToLogin:
				logger.Debug("guard redirect to login",
					zap.String("path", r.URL.Path),
					zap.String("decision", decision.String()))
				http.Redirect(w, r, loginRedirectURL(loginPath, r.URL.Path), http.StatusFound)
			case guard.RedirectToRoleHome:
				logger.Debug("guard redirect to role home",
					zap.String("path", r.URL.Path),
					zap.String("decision", decision.String()))
				http.Redirect(w, r, roleHome, http.StatusFound)
			default:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			}
		})
	}
}

func loginRedirectURL(loginPath, from string) string {
	u, err := url.Parse(loginPath)
	if err != nil {
		return loginPath
	}
	if from != "" && from != "/" {
		q := u.Query()
		q.Set("next", from)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
