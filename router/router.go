package router

import (
	"net/http"

	"kbase/app/controllers"
	"kbase/app/middleware"
)

// NewRouter wires both surfaces over the same services: the HTML form
// pages behind cookie sessions and the JSON API behind bearer tokens.
func NewRouter(web *controllers.WebController, apiAuth *controllers.APIAuthController, apiEntries *controllers.APIEntryController, auth *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// web surface; index, login and register are public
	mux.Handle("GET /{$}", auth.WithSession(http.HandlerFunc(web.Index)))
	mux.Handle("GET /login", auth.WithSession(http.HandlerFunc(web.LoginForm)))
	mux.Handle("POST /login", auth.WithSession(http.HandlerFunc(web.LoginSubmit)))
	mux.Handle("GET /logout", auth.WithSession(http.HandlerFunc(web.Logout)))
	mux.Handle("GET /register", auth.WithSession(http.HandlerFunc(web.RegisterForm)))
	mux.Handle("POST /register", auth.WithSession(http.HandlerFunc(web.RegisterSubmit)))

	requireUser := func(h http.HandlerFunc) http.Handler {
		return auth.WithSession(auth.RequireUser(h))
	}
	mux.Handle("GET /add", requireUser(web.AddForm))
	mux.Handle("POST /add", requireUser(web.AddSubmit))
	mux.Handle("GET /edit/{id}", requireUser(web.EditForm))
	mux.Handle("POST /edit/{id}", requireUser(web.EditSubmit))
	mux.Handle("GET /delete/{id}", requireUser(web.Delete))

	// JSON API
	mux.HandleFunc("POST /api/login", apiAuth.Login)
	mux.Handle("GET /api/entries", auth.RequireToken(http.HandlerFunc(apiEntries.List)))
	mux.Handle("POST /api/entries", auth.RequireToken(http.HandlerFunc(apiEntries.Create)))
	mux.Handle("GET /api/entries/{id}", auth.RequireToken(http.HandlerFunc(apiEntries.Get)))
	mux.Handle("PUT /api/entries/{id}", auth.RequireToken(http.HandlerFunc(apiEntries.Update)))
	mux.Handle("DELETE /api/entries/{id}", auth.RequireToken(http.HandlerFunc(apiEntries.Delete)))

	return mux
}
