package planner

import (
	"fmt"
	"net/url"
	"strings"

	"freewen/internal/model"
)

// Section headings the prompt demands and the parser looks for. Prompt and
// parser are one versioned contract; change a heading here and both sides
// (and their tests) see it.
const (
	SectionFlights   = "FLIGHTS"
	SectionHotels    = "HOTELS"
	SectionItinerary = "ITINERARY"
	SectionBudget    = "BUDGET"
)

const promptDateLayout = "January 2, 2006"

// BuildPrompt renders a TripConfig into the generation prompt. Pure
// formatting, no error paths. Every config field value appears verbatim so
// the model sees exactly what the user entered.
func BuildPrompt(cfg model.TripConfig) string {
	duration := cfg.DurationDays()
	activities := strings.Join(cfg.Activities, ", ")
	if activities == "" {
		activities = "General sightseeing"
	}
	people := "people"
	if cfg.Travelers == 1 {
		people = "person"
	}
	startISO := cfg.StartDate.Format("2006-01-02")
	endISO := cfg.EndDate.Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "I need help planning a trip with the following details:\n")
	fmt.Fprintf(&b, "- Origin: %s\n", cfg.Origin)
	fmt.Fprintf(&b, "- Destination: %s\n", cfg.Destination)
	fmt.Fprintf(&b, "- Travel dates: %s to %s (%d days)\n",
		cfg.StartDate.Format(promptDateLayout), cfg.EndDate.Format(promptDateLayout), duration)
	fmt.Fprintf(&b, "- Number of Travelers: %d %s\n", cfg.Travelers, people)
	fmt.Fprintf(&b, "- Total Budget: %.2f %s for all travelers\n\n", cfg.Budget, cfg.Currency)

	fmt.Fprintf(&b, "Travel Preferences:\n")
	fmt.Fprintf(&b, "- Pace: %s\n", cfg.Pace)
	fmt.Fprintf(&b, "- Style: %s\n", cfg.Style)
	fmt.Fprintf(&b, "- Activities: %s\n", activities)
	fmt.Fprintf(&b, "- Accommodation Type: %s\n", cfg.Accommodation)
	fmt.Fprintf(&b, "- Food Preference: %s\n\n", cfg.Food)

	b.WriteString("CRITICAL: You MUST format your response using MARKDOWN TABLES ONLY (pipe-separated format).\n\n")

	fmt.Fprintf(&b, "## %s\n\n", SectionFlights)
	fmt.Fprintf(&b, "| Airline | Departure | Arrival | Duration | Price (%s) | Booking Link |\n", cfg.Currency)
	b.WriteString("|---------|-----------|---------|----------|-----------|--------------|\n\n")
	b.WriteString("Provide 3-5 flight options. Every row must have ALL columns filled with current data from Google Search.\n")
	fmt.Fprintf(&b, "Use this booking link format: https://www.google.com/travel/flights?q=Flights%%20from%%20%s%%20to%%20%s%%20on%%20%s\n\n",
		url.PathEscape(cfg.Origin), url.PathEscape(cfg.Destination), startISO)

	fmt.Fprintf(&b, "## %s\n\n", SectionHotels)
	fmt.Fprintf(&b, "| Hotel Name | Rating | Price per Night (%s) | Total Cost (%s) | Location | Booking Link | Map Link |\n",
		cfg.Currency, cfg.Currency)
	b.WriteString("|------------|--------|----------------------|-----------------|----------|--------------|----------|\n\n")
	fmt.Fprintf(&b, "Provide 4-6 hotel options matching the %q preference, priced for %d %s.\n",
		cfg.Accommodation, cfg.Travelers, people)
	fmt.Fprintf(&b, "Booking link format: https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s&group_adults=%d\n",
		plusEscape(cfg.Destination), startISO, endISO, cfg.Travelers)
	fmt.Fprintf(&b, "Map link format: https://www.google.com/maps/search/[Hotel+Name+%s]\n\n", plusEscape(cfg.Destination))

	fmt.Fprintf(&b, "## %s\n\n", SectionItinerary)
	b.WriteString("Create a detailed hour-by-hour schedule for each day with specific times, transportation between every location change, and all meal stops.\n\n")
	fmt.Fprintf(&b, "| Day | Date | Time | Activity Type | Activity/Location | Duration | Cost (%s) | Transportation | Notes | Map Link |\n", cfg.Currency)
	b.WriteString("|-----|------|------|---------------|-------------------|----------|-----------|----------------|-------|----------|\n\n")
	fmt.Fprintf(&b, "Cover each of the %d days. Activity Type must be one of: Breakfast, Lunch, Dinner, Coffee/Snack, Transportation, Sightseeing, Activity, Shopping, Rest.\n", duration)
	fmt.Fprintf(&b, "Tailor the number of activities per day to a %q pace, the %q style and the %q food preference.\n", cfg.Pace, cfg.Style, cfg.Food)
	fmt.Fprintf(&b, "After the itinerary table, provide one summary line per day in the form:\n")
	fmt.Fprintf(&b, "**Day 1 Total: [Transportation: X %s] [Food: X %s] [Activities: X %s] [Daily Total: X %s]**\n\n",
		cfg.Currency, cfg.Currency, cfg.Currency, cfg.Currency)

	fmt.Fprintf(&b, "## %s\n\n", SectionBudget)
	fmt.Fprintf(&b, "| Item | Amount (%s) |\n", cfg.Currency)
	b.WriteString("|------|-------------|\n\n")
	fmt.Fprintf(&b, "Break the budget into flights, accommodation (%d nights), transportation, food, activities and a 10%% miscellaneous buffer, then give the total, the user's budget of %.2f %s, and the difference.\n\n",
		duration, cfg.Budget, cfg.Currency)

	b.WriteString("CRITICAL RULES:\n")
	b.WriteString("1. Use ONLY pipe-separated markdown tables with a header row and a separator row.\n")
	b.WriteString("2. NO bullet points, NO numbered lists, NO other formats inside the four sections.\n")
	b.WriteString("3. Every table cell must be filled and every URL must be a complete https:// link.\n")
	fmt.Fprintf(&b, "4. All prices in %s, using Google Search for current, realistic numbers.\n", cfg.Currency)

	return b.String()
}

func plusEscape(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}
