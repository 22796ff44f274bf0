package services

import (
	"math"
	"time"
)

// Quote is the price of a stay
type Quote struct {
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
}

// IsSummer reports whether a stay starting at start is billed at the summer rate (May to August).
func IsSummer(start time.Time) bool {
	month := start.Month()
	return month >= time.May && month <= time.August
}

// AdultMultiplier scales the nightly price by party size. Children are free.
func AdultMultiplier(adults int) float64 {
	switch {
	case adults <= 1:
		return 1.0
	case adults == 2:
		return 1.5
	default:
		return 2.0
	}
}

// Nights counts started days between start and end. end must be after start.
func Nights(start, end time.Time) int {
	d := end.Sub(start)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

// CalculatePrice prices a stay. The season is chosen by the start month for the whole stay.
func CalculatePrice(start, end time.Time, priceSummer, priceWinter float64, adults int) Quote {
	nights := Nights(start, end)

	perNight := priceWinter
	if IsSummer(start) {
		perNight = priceSummer
	}

	return Quote{
		Nights:     nights,
		TotalPrice: math.Round(perNight * float64(nights) * AdultMultiplier(adults)),
	}
}
