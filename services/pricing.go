package services

import (
	"math"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"
)

// ComputeFinalPrice applies a percentage discount and rounds to cents.
func ComputeFinalPrice(basePrice, discountRate float64) float64 {
	return math.Round(basePrice*(1-discountRate/100)*100) / 100
}

// ComputePackageStatus compares calendar days only; both ends of the window
// are inclusive.
func ComputePackageStatus(start, end, today time.Time) models.PackageStatus {
	day := utils.BeginningOfDay(today)
	switch {
	case day.Before(utils.DateIn(start, today.Location())):
		return models.PackageUpcoming
	case day.After(utils.DateIn(end, today.Location())):
		return models.PackageExpired
	default:
		return models.PackageActive
	}
}

func validatePricing(errs fieldErrors, basePrice, discountRate float64, start, end time.Time) {
	if basePrice < 0 {
		errs.add("base_price", "must not be negative")
	}
	if discountRate < 0 || discountRate > 100 {
		errs.add("discount_rate", "must be between 0 and 100")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs.add("end_date", "must not be before start_date")
	}
}
