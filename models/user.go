package models

import (
	"time"

	"vikendica/constants"
)

type User struct {
	Username  string    `gorm:"primaryKey;size:80" json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `gorm:"uniqueIndex;size:120" json:"email"`
	Role      string    `gorm:"size:20;not null;default:tourist" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	Username string
	Role     string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a Actor) IsOwner() bool {
	return a.Role == constants.RoleOwner
}
