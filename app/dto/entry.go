package dto

import "kbase/app/models"

type EntryRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	UserID   uint   `json:"user_id"`
}

type EntryResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

func EntryToDTO(e *models.Entry) EntryResponse {
	return EntryResponse{ID: e.ID, Title: e.Title, Category: e.Category, Content: e.Content}
}
