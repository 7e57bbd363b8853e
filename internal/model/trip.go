package model

import "time"

// TripConfig holds the user-supplied parameters that drive plan generation.
// The session keeps a working copy the user can edit; every generated plan
// embeds its own frozen snapshot.
type TripConfig struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Travelers     int       `json:"travelers"`
	Budget        float64   `json:"budget"`
	Currency      string    `json:"currency"`
	Pace          string    `json:"pace"`
	Style         string    `json:"style"`
	Activities    []string  `json:"activities"`
	Accommodation string    `json:"accommodation"`
	Food          string    `json:"food"`
}

// DurationDays is the trip length in nights (end minus start).
func (c TripConfig) DurationDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}

func (c TripConfig) Clone() TripConfig {
	out := c
	out.Activities = append([]string(nil), c.Activities...)
	return out
}
