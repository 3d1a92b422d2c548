package models

import (
	"math"
	"time"
)

type Retailer string

const (
	// RetailerLego is the canonical manufacturer storefront. It always
	// lists at retail price and never produces a deal.
	RetailerLego    Retailer = "lego"
	RetailerAmazon  Retailer = "amazon"
	RetailerWalmart Retailer = "walmart"
	RetailerTarget  Retailer = "target"
)

// Retailers is the fixed set the pricing pipeline iterates over.
var Retailers = []Retailer{RetailerLego, RetailerAmazon, RetailerWalmart, RetailerTarget}

// PriceObservation is one retailer's price/stock snapshot for one product.
// Keyed by (Number, Retailer); every pricing cycle overwrites the previous
// observation, no history is kept.
type PriceObservation struct {
	Number      string    `json:"number"`
	Retailer    Retailer  `json:"retailer"`
	Price       float64   `json:"price"`
	RetailPrice float64   `json:"retail_price"`
	URL         string    `json:"url"`
	InStock     bool      `json:"in_stock"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Denormalized product fields for read efficiency.
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Theme    string `json:"theme"`
	Pieces   int    `json:"pieces"`
}

// RoundCents rounds a price to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
