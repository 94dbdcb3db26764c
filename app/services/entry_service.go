package services

import (
	"errors"

	"kbase/app/models"
	"kbase/app/repo"

	"gorm.io/gorm"
)

type EntryService struct{ entries *repo.EntryRepository }

func NewEntryService(entries *repo.EntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

// EntryFields carries the user-editable part of an entry. All three
// fields are required on create and update, on both surfaces.
type EntryFields struct {
	Title    string
	Category string
	Content  string
}

func (f EntryFields) validate() error {
	if f.Title == "" || f.Category == "" || f.Content == "" {
		return ErrValidation
	}
	return nil
}

// CanModify is the single ownership rule shared by the form and API
// surfaces: the owner or any admin may mutate an entry.
func CanModify(e *models.Entry, requester *models.User) bool {
	return requester != nil && (e.UserID == requester.ID || requester.IsAdmin)
}

func (s *EntryService) Create(owner *models.User, fields EntryFields) (*models.Entry, error) {
	if err := fields.validate(); err != nil {
		return nil, err
	}
	e := &models.Entry{Title: fields.Title, Category: fields.Category, Content: fields.Content, UserID: owner.ID}
	if err := s.entries.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EntryService) Get(id uint) (*models.Entry, error) {
	e, err := s.entries.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EntryService) ListAll() ([]models.Entry, error) {
	return s.entries.ListAll()
}

func (s *EntryService) Update(id uint, requester *models.User, fields EntryFields) (*models.Entry, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanModify(e, requester) {
		return nil, ErrForbidden
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	e.Title = fields.Title
	e.Category = fields.Category
	e.Content = fields.Content
	if err := s.entries.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EntryService) Delete(id uint, requester *models.User) error {
	e, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanModify(e, requester) {
		return ErrForbidden
	}
	return s.entries.Delete(e.ID)
}
