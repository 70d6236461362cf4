package models

import "time"

type Employee struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"companyId"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Email      string `gorm:"size:100;index" json:"email"`
	Phone      string `gorm:"size:20" json:"phone"`
	PictureURL string `gorm:"size:512" json:"pictureUrl"`
	IsActive   bool   `json:"isActive"`

	Works []Work `gorm:"many2many:employee_works;" json:"assignedWorks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasWork reports whether the work is assigned to the employee. Works must be preloaded.
func (e *Employee) HasWork(workID uint) bool {
	for _, w := range e.Works {
		if w.ID == workID {
			return true
		}
	}
	return false
}
