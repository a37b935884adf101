package payments

import (
	"cloud.google.com/go/civil"

	"github.com/bobmcallan/xirr/internal/models"
)

// Validate pairs independently supplied dates and amounts and checks the
// schedule invariants.
func Validate(dates []civil.Date, amounts []float64) (models.Schedule, error) {
	schedule, err := pair(dates, amounts)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ValidateSchedule checks that the schedule has at least one strictly
// positive and one strictly negative amount. Zero amounts count for neither.
func ValidateSchedule(s models.Schedule) error {
	var positive, negative bool
	for _, p := range s {
		switch {
		case p.Amount > 0:
			positive = true
		case p.Amount < 0:
			negative = true
		}
		if positive && negative {
			return nil
		}
	}
	return invalid("negative and positive payments are required")
}

func pair(dates []civil.Date, amounts []float64) (models.Schedule, error) {
	if len(dates) != len(amounts) {
		return nil, invalid("the amounts and dates arrays are of different lengths (%d dates, %d amounts)", len(dates), len(amounts))
	}
	schedule := make(models.Schedule, len(dates))
	for i := range dates {
		schedule[i] = models.Payment{Date: dates[i], Amount: amounts[i]}
	}
	return schedule, nil
}
