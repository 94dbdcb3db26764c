package models

import "time"

type Entry struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:100;not null"`
	Category  string `gorm:"size:50;not null"`
	Content   string `gorm:"type:text;not null"`
	UserID    uint   `gorm:"index;not null"`
	Author    User   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}
