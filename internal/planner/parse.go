package planner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"freewen/internal/model"
)

// Best-effort extraction of the four expected sections from the raw model
// text. Missing sections yield empty collections and a note in
// MissingSections; a malformed row is skipped (or kept with day 0 in the
// itinerary) and parsing continues. Never returns an error.

var (
	tableRe    = regexp.MustCompile(`(?m)^\|.*\|[^\n]*\n\|[-\s|:]+\n(\|.*\n?)+`)
	dayTotalRe = regexp.MustCompile(`(?i)\*\*Day\s+(\d+)\s+Total:?\s*([^*\n]+)`)
)

// ParsePlan scans raw for the section headings the prompt demanded and maps
// each section's first pipe table into typed records.
func ParsePlan(raw string) *model.TravelPlan {
	plan := &model.TravelPlan{
		Raw:         raw,
		DayTotals:   map[int]string{},
		GeneratedAt: time.Now(),
	}

	found := map[string]bool{}
	for _, section := range strings.Split(raw, "##") {
		body := strings.TrimSpace(section)
		if body == "" {
			continue
		}
		title := strings.ToUpper(firstLine(body))

		// A section only counts when its table yields rows, so a later
		// keyword-sharing heading without a table ("## Flight Booking
		// Tips") never erases an already-parsed collection.
		switch {
		case strings.Contains(title, "FLIGHT"):
			if flights := parseFlights(body); len(flights) > 0 {
				plan.Flights = flights
				found[SectionFlights] = true
			}
		case strings.Contains(title, "HOTEL"):
			if hotels := parseHotels(body); len(hotels) > 0 {
				plan.Hotels = hotels
				found[SectionHotels] = true
			}
		case strings.Contains(title, "ITINERARY"):
			if entries := parseItinerary(body); len(entries) > 0 {
				plan.Itinerary = entries
				found[SectionItinerary] = true
			}
			for day, total := range parseDayTotals(body) {
				plan.DayTotals[day] = total
			}
		case strings.Contains(title, "BUDGET"):
			if budget := parseBudget(body); len(budget) > 0 {
				plan.Budget = budget
				found[SectionBudget] = true
			}
		}
	}

	// Stable by day: intra-day order comes from the model and times are
	// free text, so document order within a day is authoritative.
	sort.SliceStable(plan.Itinerary, func(i, j int) bool {
		return plan.Itinerary[i].Day < plan.Itinerary[j].Day
	})

	for _, name := range []string{SectionFlights, SectionHotels, SectionItinerary, SectionBudget} {
		if !found[name] {
			plan.MissingSections = append(plan.MissingSections, name)
		}
	}
	switch len(plan.MissingSections) {
	case 0:
		plan.Status = model.ParseComplete
	case 4:
		plan.Status = model.ParseEmpty
	default:
		plan.Status = model.ParsePartial
	}
	return plan
}

// parseTable extracts the first markdown table of a section as raw rows,
// dropping rows whose cell count differs from the header.
func parseTable(section string) [][]string {
	match := tableRe.FindString(section)
	if match == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(match), "\n")
	if len(lines) < 3 {
		return nil
	}
	header := splitRow(lines[0])
	if len(header) == 0 {
		return nil
	}

	var rows [][]string
	for _, line := range lines[2:] { // skip header and separator
		cells := splitRow(line)
		if len(cells) != len(header) {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, "|") {
		return nil
	}
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func parseFlights(section string) []model.FlightOption {
	var out []model.FlightOption
	for _, row := range parseTable(section) {
		out = append(out, model.FlightOption{
			Airline:     cell(row, 0),
			Departure:   cell(row, 1),
			Arrival:     cell(row, 2),
			Duration:    cell(row, 3),
			Price:       cell(row, 4),
			BookingLink: linkTarget(cell(row, 5)),
		})
	}
	return out
}

func parseHotels(section string) []model.HotelOption {
	var out []model.HotelOption
	for _, row := range parseTable(section) {
		out = append(out, model.HotelOption{
			Name:          cell(row, 0),
			Rating:        cell(row, 1),
			PricePerNight: cell(row, 2),
			TotalCost:     cell(row, 3),
			Location:      cell(row, 4),
			BookingLink:   linkTarget(cell(row, 5)),
			MapLink:       linkTarget(cell(row, 6)),
		})
	}
	return out
}

func parseItinerary(section string) []model.ItineraryEntry {
	var out []model.ItineraryEntry
	for _, row := range parseTable(section) {
		day, err := strconv.Atoi(cell(row, 0))
		if err != nil || day < 0 {
			day = 0 // keep the row, flagged as malformed
		}
		out = append(out, model.ItineraryEntry{
			Day:          day,
			Date:         cell(row, 1),
			Time:         cell(row, 2),
			ActivityType: cell(row, 3),
			Activity:     cell(row, 4),
			Duration:     cell(row, 5),
			Cost:         cell(row, 6),
			Transport:    cell(row, 7),
			Notes:        cell(row, 8),
			MapLink:      linkTarget(cell(row, 9)),
		})
	}
	return out
}

func parseBudget(section string) []model.BudgetLine {
	var out []model.BudgetLine
	for _, row := range parseTable(section) {
		item := strings.Trim(cell(row, 0), "* ")
		amount := strings.Trim(cell(row, 1), "* ")
		if item == "" {
			continue
		}
		out = append(out, model.BudgetLine{Item: item, Amount: amount})
	}
	return out
}

func parseDayTotals(section string) map[int]string {
	totals := map[int]string{}
	for _, m := range dayTotalRe.FindAllStringSubmatch(section, -1) {
		day, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		totals[day] = strings.TrimSpace(m[2])
	}
	return totals
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

var markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// linkTarget unwraps a markdown link cell to its URL; bare text passes
// through unchanged.
func linkTarget(s string) string {
	if m := markdownLinkRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[2])
	}
	return s
}
