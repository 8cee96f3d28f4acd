package models

import "time"

// Barber is a mirror of an entity owned by the barbers service. The id is
// assigned remotely, so there is no generation hook here. Rows are created or
// overwritten wholesale by the barber event handler and never deleted; a
// barber removed upstream is marked Active=false instead.
type Barber struct {
	ID     string `gorm:"type:varchar(64);primary_key" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`

	UpdatedAt time.Time `json:"updatedAt"`
}
