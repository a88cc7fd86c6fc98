package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validate is the shared validator instance for request payloads.
var Validate = validator.New()

type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HostID      uuid.UUID `gorm:"type:uuid;index;not null" json:"hostId"`
	Make        string    `gorm:"size:80;not null" json:"make" validate:"required"`
	Model       string    `gorm:"size:80;not null" json:"model" validate:"required"`
	Year        int       `gorm:"not null" json:"year" validate:"required,gte=1950"`
	Price       float64   `gorm:"not null" json:"price" validate:"required,gt=0"`
	Location    string    `gorm:"size:255;index" json:"location" validate:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Features    []string  `gorm:"serializer:json" json:"features"`
	// Availability is the host-managed listing flag; cars with it off never
	// admit new bookings and are hidden from public listings.
	Availability bool      `gorm:"not null;default:true" json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CarSummary is the slice of a car attached to a renter's booking listing.
type CarSummary struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	ImageURL string `json:"imageUrl"`
}

func (c *Car) Summary() *CarSummary {
	return &CarSummary{Make: c.Make, Model: c.Model, ImageURL: c.ImageURL}
}

// CarUpdate carries the mutable fields of a listing for PUT /cars/:id.
// HostID is deliberately absent; ownership is never client-supplied.
type CarUpdate struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Year         int      `json:"year" validate:"required,gte=1950"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Location     string   `json:"location" validate:"required"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Features     []string `json:"features"`
	Availability bool     `json:"availability"`
}
