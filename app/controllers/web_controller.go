package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"kbase/app/middleware"
	"kbase/app/models"
	"kbase/app/services"
	"kbase/app/session"
	"kbase/app/view"
)

// WebController serves the form-based HTML surface. Every failure turns
// into a flash message and a redirect to a safe page; nothing here is
// allowed to be fatal.
type WebController struct {
	Users    *services.UserService
	Entries  *services.EntryService
	Sessions session.Store
	View     *view.Renderer
}

func NewWebController(users *services.UserService, entries *services.EntryService, sessions session.Store, renderer *view.Renderer) *WebController {
	return &WebController{Users: users, Entries: entries, Sessions: sessions, View: renderer}
}

func (c *WebController) flash(r *http.Request, category, message string) {
	if sid := middleware.GetSessionID(r.Context()); sid != "" {
		_ = c.Sessions.PushFlash(r.Context(), sid, session.Flash{Category: category, Message: message})
	}
}

func (c *WebController) page(r *http.Request) view.PageData {
	data := view.PageData{User: middleware.GetUser(r.Context())}
	if sid := middleware.GetSessionID(r.Context()); sid != "" {
		data.Flashes, _ = c.Sessions.PopFlashes(r.Context(), sid)
	}
	return data
}

func (c *WebController) Index(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Entries.ListAll()
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	data := c.page(r)
	data.Entries = entries
	c.View.Render(w, "index.html", data)
}

func (c *WebController) AddForm(w http.ResponseWriter, r *http.Request) {
	c.View.Render(w, "add_entry.html", c.page(r))
}

func (c *WebController) AddSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	fields := services.EntryFields{Title: r.FormValue("title"), Category: r.FormValue("category"), Content: r.FormValue("content")}
	if _, err := c.Entries.Create(middleware.GetUser(r.Context()), fields); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.flash(r, "danger", "Title, category and content are required.")
			http.Redirect(w, r, "/add", http.StatusSeeOther)
			return
		}
		c.flash(r, "danger", "Could not save the entry.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	c.flash(r, "success", "Entry added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *WebController) EditForm(w http.ResponseWriter, r *http.Request) {
	e, ok := c.modifiableEntry(w, r)
	if !ok {
		return
	}
	data := c.page(r)
	data.Entry = e
	c.View.Render(w, "edit_entry.html", data)
}

func (c *WebController) EditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_ = r.ParseForm()
	fields := services.EntryFields{Title: r.FormValue("title"), Category: r.FormValue("category"), Content: r.FormValue("content")}
	if _, err := c.Entries.Update(id, middleware.GetUser(r.Context()), fields); err != nil {
		c.redirectEntryError(w, r, err, "/edit/"+strconv.FormatUint(uint64(id), 10))
		return
	}
	c.flash(r, "success", "Entry updated successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *WebController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := c.Entries.Delete(id, middleware.GetUser(r.Context())); err != nil {
		c.redirectEntryError(w, r, err, "/")
		return
	}
	c.flash(r, "success", "Entry deleted successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *WebController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.View.Render(w, "login.html", c.page(r))
}

func (c *WebController) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	u, err := c.Users.ValidateCredentials(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		c.flash(r, "danger", "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	sid := middleware.GetSessionID(r.Context())
	if err := c.Sessions.SetUser(r.Context(), sid, u.ID); err != nil {
		c.flash(r, "danger", "Could not start a session.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	c.flash(r, "success", "Logged in successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *WebController) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := middleware.GetSessionID(r.Context()); sid != "" {
		_ = c.Sessions.ClearUser(r.Context(), sid)
	}
	c.flash(r, "info", "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *WebController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.View.Render(w, "register.html", c.page(r))
}

func (c *WebController) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	_, err := c.Users.Register(r.FormValue("username"), r.FormValue("password"))
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		c.flash(r, "danger", "Username already exists.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, services.ErrValidation):
		c.flash(r, "danger", "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		c.flash(r, "danger", "Registration failed.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		c.flash(r, "success", "Registration successful! Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// modifiableEntry loads the entry for the edit form and applies the
// same ownership rule the mutating routes enforce, so a non-owner
// never even sees the form.
func (c *WebController) modifiableEntry(w http.ResponseWriter, r *http.Request) (*models.Entry, bool) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	e, err := c.Entries.Get(id)
	if err != nil {
		c.redirectEntryError(w, r, err, "/")
		return nil, false
	}
	if !services.CanModify(e, middleware.GetUser(r.Context())) {
		c.flash(r, "danger", "You don't have permission to edit this entry.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return e, true
}

func (c *WebController) redirectEntryError(w http.ResponseWriter, r *http.Request, err error, retry string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.flash(r, "danger", "Entry not found.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, services.ErrForbidden):
		c.flash(r, "danger", "You don't have permission to modify this entry.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, services.ErrValidation):
		c.flash(r, "danger", "Title, category and content are required.")
		http.Redirect(w, r, retry, http.StatusSeeOther)
	default:
		c.flash(r, "danger", "Something went wrong.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
