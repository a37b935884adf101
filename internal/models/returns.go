package models

import "cloud.google.com/go/civil"

// XIRRResult is the outcome of an XIRR calculation over a schedule.
type XIRRResult struct {
	Rate     float64    `json:"rate"`
	Payments int        `json:"payments"`
	Start    civil.Date `json:"start"`
	End      civil.Date `json:"end"`
	Inflow   float64    `json:"inflow"`
	Outflow  float64    `json:"outflow"`
	DayCount string     `json:"day_count"`
}

// NPVResult is the net present value of a schedule at a given rate.
type NPVResult struct {
	Rate     float64    `json:"rate"`
	NPV      float64    `json:"npv"`
	Payments int        `json:"payments"`
	Start    civil.Date `json:"start"`
	DayCount string     `json:"day_count"`
}

// ProfilePoint is one sample of the NPV curve.
type ProfilePoint struct {
	Rate float64 `json:"rate"`
	NPV  float64 `json:"npv"`
}
