package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwtutil "kbase/app/jwt"
	"kbase/app/models"
	"kbase/app/services"
	"kbase/app/session"
)

type ctxKey int

const (
	ClaimsKey ctxKey = iota + 1
	UserKey
	SessionKey
)

// SessionCookie names the browser cookie carrying the session id.
const SessionCookie = "kb_session"

type Auth struct {
	Signer   *jwtutil.Signer
	Sessions session.Store
	Users    *services.UserService
}

// RequireToken guards the JSON API. An absent, malformed, expired or
// badly signed bearer token is a 401; the claims land in the context.
func (a *Auth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			unauthorized(w)
			return
		}
		claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"missing or invalid token"}`))
}

// WithSession resolves the session cookie on every web request,
// creating an anonymous session when none exists, and puts the session
// id plus the logged-in user (if any) into the context.
func (a *Auth) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := ""
		var uid uint
		if c, err := r.Cookie(SessionCookie); err == nil {
			sid = c.Value
			id, err := a.Sessions.UserID(ctx, sid)
			if errors.Is(err, session.ErrNoSession) {
				sid = ""
			} else if err == nil {
				uid = id
			}
		}
		if sid == "" {
			created, err := a.Sessions.Create(ctx)
			if err != nil {
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
			sid = created
			http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: sid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
		}
		ctx = context.WithValue(ctx, SessionKey, sid)
		if uid != 0 {
			if u, err := a.Users.FindByID(uid); err == nil {
				ctx = context.WithValue(ctx, UserKey, u)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser guards the state-changing web routes. The surface is
// browser-facing, so missing auth redirects to the login form instead
// of returning a bare status.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			if sid := GetSessionID(r.Context()); sid != "" {
				_ = a.Sessions.PushFlash(r.Context(), sid, session.Flash{Category: "danger", Message: "Please log in to access this page."})
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequesterFromClaims rebuilds the requester the entry service checks
// against. The admin flag comes from the token, an issuance-time
// snapshot kept deliberately (stateless tokens over revocability).
func RequesterFromClaims(c *jwtutil.Claims) *models.User {
	return &models.User{ID: c.UserID, Username: c.Username, IsAdmin: c.IsAdmin}
}
