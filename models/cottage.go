package models

import (
	"fmt"
	"time"
)

// NoRating is stored in Cottage.Ocena while no completed reservation carries a rating.
const NoRating = -1.0

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Amenities struct {
	WiFi        bool `json:"WiFi"`
	Kitchen     bool `json:"Kitchen"`
	Laundry     bool `json:"Laundry"`
	Parking     bool `json:"Parking"`
	PetFriendly bool `json:"PetFriendly"`
}

type Cottage struct {
	ID            string     `json:"_id" gorm:"primaryKey;size:36"`
	OwnerUsername string     `json:"OwnerUsername" gorm:"size:80;not null;index"`
	Title         string     `json:"Title" gorm:"not null"`
	Description   string     `json:"Description"`
	Location      Location   `json:"Location" gorm:"embedded;embeddedPrefix:location_"`
	PriceSummer   float64    `json:"PriceSummer" gorm:"not null"`
	PriceWinter   float64    `json:"PriceWinter" gorm:"not null"`
	Photos        []string   `json:"Photos" gorm:"serializer:json;type:text"`
	Amenities     Amenities  `json:"Amenities" gorm:"embedded;embeddedPrefix:amenity_"`
	Ocena         float64    `json:"Ocena" gorm:"default:-1"`
	IsBlocked     bool       `json:"isBlocked" gorm:"default:false"`
	BlockedUntil  *time.Time `json:"blockedUntil,omitempty"`
	BlockedReason string     `json:"blockedReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BlockedAt reports whether moderation blocks the cottage at the given instant.
// A block without expiry is permanent until lifted.
func (c *Cottage) BlockedAt(now time.Time) bool {
	if !c.IsBlocked {
		return false
	}
	return c.BlockedUntil == nil || c.BlockedUntil.After(now)
}

func (c *Cottage) ValidatePrices() error {
	if c.PriceSummer < 0 || c.PriceWinter < 0 {
		return fmt.Errorf("invalid prices: summer %.2f, winter %.2f", c.PriceSummer, c.PriceWinter)
	}
	return nil
}
