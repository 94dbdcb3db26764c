package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kbase/app/dto"
	"kbase/app/middleware"
	"kbase/app/services"
)

type APIEntryController struct {
	Entries *services.EntryService
	Users   *services.UserService
}

func NewAPIEntryController(entries *services.EntryService, users *services.UserService) *APIEntryController {
	return &APIEntryController{Entries: entries, Users: users}
}

func (c *APIEntryController) List(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Entries.ListAll()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.MessageResponse{Message: "database error"})
		return
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.EntryToDTO(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *APIEntryController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	owner, err := c.Users.FindByID(req.UserID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		return
	}
	e, err := c.Entries.Create(owner, services.EntryFields{Title: req.Title, Category: req.Category, Content: req.Content})
	if err != nil {
		writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreatedResponse{Message: "Entry created", ID: e.ID})
}

func (c *APIEntryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	e, err := c.Entries.Get(id)
	if err != nil {
		writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.EntryToDTO(e))
}

func (c *APIEntryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	var req dto.EntryRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	requester := middleware.RequesterFromClaims(middleware.GetClaims(r.Context()))
	_, err := c.Entries.Update(id, requester, services.EntryFields{Title: req.Title, Category: req.Category, Content: req.Content})
	if err != nil {
		writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Entry updated"})
}

func (c *APIEntryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	requester := middleware.RequesterFromClaims(middleware.GetClaims(r.Context()))
	if err := c.Entries.Delete(id, requester); err != nil {
		writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Entry deleted"})
}

func entryID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, dto.MessageResponse{Message: "Entry not found"})
		return 0, false
	}
	return uint(id), true
}

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.MessageResponse{Message: "Entry not found"})
	case errors.Is(err, services.ErrForbidden):
		writeJSON(w, http.StatusForbidden, dto.MessageResponse{Message: "You don't have permission to modify this entry"})
	case errors.Is(err, services.ErrValidation):
		writeJSON(w, http.StatusBadRequest, dto.MessageResponse{Message: "title, category and content are required"})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.MessageResponse{Message: "database error"})
	}
}
