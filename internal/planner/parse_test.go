package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freewen/internal/model"
)

const fullResponse = `Here is your trip plan.

## FLIGHTS

| Airline | Departure | Arrival | Duration | Price (USD) | Booking Link |
|---------|-----------|---------|----------|-------------|--------------|
| ANA | JFK 10:30 AM | NRT 2:15 PM +1 | 14h 45m | 850 | [Book](https://www.google.com/travel/flights?q=1) |
| JAL | JFK 1:00 PM | HND 4:40 PM +1 | 14h 40m | 920 | https://www.google.com/travel/flights?q=2 |
| United | EWR 11:00 AM | NRT 2:50 PM +1 | 13h 50m | broken row |

## HOTELS

| Hotel Name | Rating | Price per Night (USD) | Total Cost (USD) | Location | Booking Link | Map Link |
|------------|--------|-----------------------|------------------|----------|--------------|----------|
| Hotel Gracery | 4.2 | 140 | 980 | Shinjuku | [Book](https://www.booking.com/h1) | [Map](https://maps.google.com/h1) |
| Mitsui Garden | 4.5 | 165 | 1155 | Ginza | [Book](https://www.booking.com/h2) | [Map](https://maps.google.com/h2) |

## ITINERARY

| Day | Date | Time | Activity Type | Activity/Location | Duration | Cost (USD) | Transportation | Notes | Map Link |
|-----|------|------|---------------|-------------------|----------|------------|----------------|-------|----------|
| 2 | Oct 2 | 9:00 AM | Sightseeing | Senso-ji Temple | 2h | 0 | Metro | Early start | [Map](https://maps.google.com/sensoji) |
| 1 | Oct 1 | 3:00 PM | Transportation | Airport to Hotel | 1h | 30 | Narita Express | Buy pass | [Map](https://maps.google.com/nex) |
| 1 | Oct 1 | 7:00 PM | Dinner | Ichiran Ramen | 1h | 15 | Walk | Queue expected | [Map](https://maps.google.com/ichiran) |
| Day? | Oct 3 | 10:00 AM | Activity | TeamLab Planets | 3h | 38 | Metro | Book ahead | [Map](https://maps.google.com/teamlab) |

**Day 1 Total: [Transportation: 30 USD] [Food: 15 USD] [Activities: 0 USD] [Daily Total: 45 USD]**
**Day 2 Total: [Transportation: 10 USD] [Food: 40 USD] [Activities: 38 USD] [Daily Total: 88 USD]**

## BUDGET

| Item | Amount (USD) |
|------|--------------|
| Flights | 1700 |
| Accommodation (7 nights) | 980 |
| **Total** | **3500** |
`

func TestParsePlan_Complete(t *testing.T) {
	plan := ParsePlan(fullResponse)

	assert.Equal(t, model.ParseComplete, plan.Status)
	assert.Empty(t, plan.MissingSections)
	assert.Equal(t, fullResponse, plan.Raw)

	t.Run("flights", func(t *testing.T) {
		require.Len(t, plan.Flights, 2, "row with a wrong cell count is dropped")
		assert.Equal(t, "ANA", plan.Flights[0].Airline)
		assert.Equal(t, "850", plan.Flights[0].Price)
		assert.Equal(t, "https://www.google.com/travel/flights?q=1", plan.Flights[0].BookingLink)
		assert.Equal(t, "https://www.google.com/travel/flights?q=2", plan.Flights[1].BookingLink)
	})

	t.Run("hotels", func(t *testing.T) {
		require.Len(t, plan.Hotels, 2)
		assert.Equal(t, "Hotel Gracery", plan.Hotels[0].Name)
		assert.Equal(t, "https://www.booking.com/h1", plan.Hotels[0].BookingLink)
		assert.Equal(t, "https://maps.google.com/h2", plan.Hotels[1].MapLink)
	})

	t.Run("itinerary ordering", func(t *testing.T) {
		require.Len(t, plan.Itinerary, 4)
		// Malformed day lands at 0, then days ascend; intra-day
		// document order is preserved.
		assert.Equal(t, 0, plan.Itinerary[0].Day)
		assert.Equal(t, "TeamLab Planets", plan.Itinerary[0].Activity)
		assert.Equal(t, "Airport to Hotel", plan.Itinerary[1].Activity)
		assert.Equal(t, "Ichiran Ramen", plan.Itinerary[2].Activity)
		assert.Equal(t, 2, plan.Itinerary[3].Day)
	})

	t.Run("day totals", func(t *testing.T) {
		require.Len(t, plan.DayTotals, 2)
		assert.Contains(t, plan.DayTotals[1], "[Daily Total: 45 USD]")
		assert.Contains(t, plan.DayTotals[2], "[Daily Total: 88 USD]")
	})

	t.Run("budget", func(t *testing.T) {
		require.Len(t, plan.Budget, 3)
		assert.Equal(t, "Flights", plan.Budget[0].Item)
		assert.Equal(t, model.BudgetLine{Item: "Total", Amount: "3500"}, plan.Budget[2])
	})
}

func TestParsePlan_MissingSection(t *testing.T) {
	partial := `## FLIGHTS

| Airline | Departure | Arrival | Duration | Price | Booking Link |
|---------|-----------|---------|----------|-------|--------------|
| ANA | 10:30 | 14:15 | 14h | 850 | https://example.com |

## HOTELS

Sorry, I could not find hotel availability for those dates.

## ITINERARY

| Day | Date | Time | Activity Type | Activity/Location | Duration | Cost | Transportation | Notes | Map Link |
|-----|------|------|---------------|-------------------|----------|------|----------------|-------|----------|
| 1 | Oct 1 | 9:00 | Sightseeing | Temple | 2h | 0 | Metro | - | - |
`

	plan := ParsePlan(partial)

	assert.Equal(t, model.ParsePartial, plan.Status)
	assert.ElementsMatch(t, []string{SectionHotels, SectionBudget}, plan.MissingSections)
	assert.Len(t, plan.Flights, 1)
	assert.Empty(t, plan.Hotels)
	assert.Len(t, plan.Itinerary, 1)
	assert.Empty(t, plan.Budget)
}

func TestParsePlan_Empty(t *testing.T) {
	for name, raw := range map[string]string{
		"prose only": "I'm sorry, I cannot plan this trip right now.",
		"blank":      "",
		"headings without tables": `## FLIGHTS

nothing here

## BUDGET

still nothing`,
	} {
		t.Run(name, func(t *testing.T) {
			plan := ParsePlan(raw)
			assert.Equal(t, model.ParseEmpty, plan.Status)
			assert.Len(t, plan.MissingSections, 4)
			assert.Empty(t, plan.Flights)
			assert.Empty(t, plan.Itinerary)
		})
	}
}

func TestParsePlan_ProseSectionDoesNotEraseParsedTable(t *testing.T) {
	raw := `## FLIGHTS

| Airline | Departure | Arrival | Duration | Price | Booking Link |
|---------|-----------|---------|----------|-------|--------------|
| ANA | 10:30 | 14:15 | 14h | 850 | https://example.com |

## Flight Booking Tips

Book at least two months ahead and check budget carriers for one-way fares.

## Hotel Area Guide

Shinjuku is best for first-time visitors.
`
	plan := ParsePlan(raw)

	require.Len(t, plan.Flights, 1, "a later keyword-sharing prose section must not erase the table")
	assert.Equal(t, "ANA", plan.Flights[0].Airline)
	assert.NotContains(t, plan.MissingSections, SectionFlights)
	assert.Contains(t, plan.MissingSections, SectionHotels, "prose alone never satisfies a section")
}

func TestParsePlan_HeadingVariants(t *testing.T) {
	raw := `## Flight Options ✈️

| Airline | Departure | Arrival | Duration | Price | Booking Link |
|---------|-----------|---------|----------|-------|--------------|
| ANA | 10:30 | 14:15 | 14h | 850 | https://example.com |
`
	plan := ParsePlan(raw)
	assert.Len(t, plan.Flights, 1)
	assert.NotContains(t, plan.MissingSections, SectionFlights)
}

func TestLinkTarget(t *testing.T) {
	assert.Equal(t, "https://example.com/x", linkTarget("[Book Now](https://example.com/x)"))
	assert.Equal(t, "https://example.com/y", linkTarget("https://example.com/y"))
	assert.Equal(t, "N/A", linkTarget("N/A"))
}
