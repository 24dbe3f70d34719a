package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Location struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `gorm:"type:varchar(2)" json:"state"`
	Zip          string    `gorm:"type:varchar(10)" json:"zip"`
	BuildingName string    `json:"building_name"`

	Units []Unit `gorm:"foreignKey:LocationID" json:"units,omitempty"`

	gorm.Model
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// FullAddress renders the single-line address used in reminder emails.
func (l *Location) FullAddress() string {
	parts := []string{}
	for _, p := range []string{l.Name, l.Address, l.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	line := strings.Join(parts, ", ")
	if l.State != "" || l.Zip != "" {
		line = fmt.Sprintf("%s, %s %s", line, l.State, l.Zip)
	}
	return strings.TrimSpace(line)
}

type Unit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LocationID uuid.UUID `gorm:"type:uuid;index;not null" json:"location_id"`
	UnitNumber string    `gorm:"not null" json:"unit_number"`
	Status     string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`

	gorm.Model
}

func (u *Unit) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
