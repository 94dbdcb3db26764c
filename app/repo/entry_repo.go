package repo

import (
	"kbase/app/models"

	"gorm.io/gorm"
)

type EntryRepository struct{ db *gorm.DB }

func NewEntryRepository(db *gorm.DB) *EntryRepository { return &EntryRepository{db: db} }

func (r *EntryRepository) Create(e *models.Entry) error { return r.db.Create(e).Error }

func (r *EntryRepository) FindByID(id uint) (*models.Entry, error) {
	var e models.Entry
	if err := r.db.Preload("Author").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListAll returns every entry, newest first.
func (r *EntryRepository) ListAll() ([]models.Entry, error) {
	var entries []models.Entry
	return entries, r.db.Preload("Author").Order("id desc").Find(&entries).Error
}

func (r *EntryRepository) Update(e *models.Entry) error { return r.db.Save(e).Error }

func (r *EntryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Entry{}, id).Error
}
