package models

import "time"

type Availability string

const (
	AvailabilityAvailable    Availability = "available"
	AvailabilityComingSoon   Availability = "coming_soon"
	AvailabilitySoldOut      Availability = "sold_out"
	AvailabilityRetiringSoon Availability = "retiring_soon"
)

// Product is one catalog entry, keyed by its set number.
// Re-ingestion upserts by Number, never duplicates.
type Product struct {
	Number       string       `json:"number"`
	Name         string       `json:"name"`
	RetailPrice  float64      `json:"retail_price"`
	ImageURL     string       `json:"image_url"`
	Theme        string       `json:"theme"`
	ThemeID      int          `json:"theme_id"`
	Pieces       int          `json:"pieces"`
	Year         int          `json:"year"`
	Availability Availability `json:"availability"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
