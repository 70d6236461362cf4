package models

import "time"

type Company struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"index" json:"ownerId"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Alias   string `gorm:"size:100;uniqueIndex;not null" json:"alias"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	Timezone            string `gorm:"size:64" json:"timezone"`
	MinAdvanceMinutes   int    `json:"minAdvanceMinutes"`
	RequireConfirmation bool   `json:"requireConfirmation"`

	BusinessHours []BusinessHours `json:"businessHours,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
