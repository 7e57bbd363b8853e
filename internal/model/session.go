package model

import "time"

// Session is one trip-planning workspace entry, keyed by name. Sessions live
// in process memory only and die with the process.
type Session struct {
	Name      string            `json:"name"`
	Config    TripConfig        `json:"config"`
	Plan      *TravelPlan       `json:"plan,omitempty"`
	Bookings  []BookingDocument `json:"bookings,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Clone deep-copies the session so callers can never alias store-owned state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Config = s.Config.Clone()
	out.Plan = s.Plan.Clone()
	out.Bookings = make([]BookingDocument, len(s.Bookings))
	for i := range s.Bookings {
		out.Bookings[i] = s.Bookings[i].Clone()
	}
	return &out
}
