package model

import "time"

// ParseStatus tags how much of the model response survived parsing.
type ParseStatus string

const (
	ParseComplete ParseStatus = "complete"
	ParsePartial  ParseStatus = "partial"
	ParseEmpty    ParseStatus = "empty"
)

type FlightOption struct {
	Airline     string `json:"airline"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
	BookingLink string `json:"booking_link"`
}

type HotelOption struct {
	Name          string `json:"name"`
	Rating        string `json:"rating"`
	PricePerNight string `json:"price_per_night"`
	TotalCost     string `json:"total_cost"`
	Location      string `json:"location"`
	BookingLink   string `json:"booking_link"`
	MapLink       string `json:"map_link"`
}

// ItineraryEntry is one scheduled stop. Day 0 marks a row whose day index
// could not be read from the response; the row is kept rather than dropped.
type ItineraryEntry struct {
	Day          int    `json:"day"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ActivityType string `json:"activity_type"`
	Activity     string `json:"activity"`
	Duration     string `json:"duration"`
	Cost         string `json:"cost"`
	Transport    string `json:"transport"`
	Notes        string `json:"notes"`
	MapLink      string `json:"map_link"`
}

type BudgetLine struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// TravelPlan is the parsed result of one generation, together with the raw
// model text it came from and the trip configuration it was generated for.
type TravelPlan struct {
	Raw             string           `json:"raw"`
	Status          ParseStatus      `json:"status"`
	MissingSections []string         `json:"missing_sections,omitempty"`
	Flights         []FlightOption   `json:"flights"`
	Hotels          []HotelOption    `json:"hotels"`
	Itinerary       []ItineraryEntry `json:"itinerary"`
	Budget          []BudgetLine     `json:"budget"`
	DayTotals       map[int]string   `json:"day_totals,omitempty"`
	Config          TripConfig       `json:"config"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

func (p *TravelPlan) Clone() *TravelPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.MissingSections = append([]string(nil), p.MissingSections...)
	out.Flights = append([]FlightOption(nil), p.Flights...)
	out.Hotels = append([]HotelOption(nil), p.Hotels...)
	out.Itinerary = append([]ItineraryEntry(nil), p.Itinerary...)
	out.Budget = append([]BudgetLine(nil), p.Budget...)
	if p.DayTotals != nil {
		out.DayTotals = make(map[int]string, len(p.DayTotals))
		for k, v := range p.DayTotals {
			out.DayTotals[k] = v
		}
	}
	out.Config = p.Config.Clone()
	return &out
}
