package models

import "time"

type BusinessHours struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CompanyID uint `gorm:"uniqueIndex:idx_company_weekday" json:"-"`

	// Weekday follows time.Weekday, 0 is Sunday.
	Weekday   int    `gorm:"uniqueIndex:idx_company_weekday" json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `gorm:"size:5" json:"openTime"`
	CloseTime string `gorm:"size:5" json:"closeTime"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
