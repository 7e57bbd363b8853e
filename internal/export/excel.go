package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"freewen/internal/model"
)

// Sheet names, in workbook order. One sheet per parsed section; row counts
// match the parsed record counts exactly.
const (
	SheetFlights   = "Flights"
	SheetHotels    = "Hotels"
	SheetItinerary = "Itinerary"
	SheetBudget    = "Budget"
)

var markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Write renders the plan as an xlsx workbook on w.
func Write(w io.Writer, plan *model.TravelPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeFlights(f, plan); err != nil {
		return err
	}
	if err := writeHotels(f, plan); err != nil {
		return err
	}
	if err := writeItinerary(f, plan); err != nil {
		return err
	}
	if err := writeBudget(f, plan); err != nil {
		return err
	}

	// The default sheet is replaced by Flights.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet failed: %w", err)
	}
	idx, err := f.GetSheetIndex(SheetFlights)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook failed: %w", err)
	}
	return nil
}

// FileName builds the download name for the workbook, e.g.
// FreeWen_Tokyo_Japan_20260101.xlsx.
func FileName(plan *model.TravelPlan) string {
	dest := strings.ReplaceAll(strings.TrimSpace(plan.Config.Destination), " ", "_")
	dest = strings.ReplaceAll(dest, ",", "")
	if dest == "" {
		dest = "Trip"
	}
	return fmt.Sprintf("FreeWen_%s_%s.xlsx", dest, plan.Config.StartDate.Format("20060102"))
}

func writeFlights(f *excelize.File, plan *model.TravelPlan) error {
	headers := []string{"Airline", "Departure", "Arrival", "Duration", "Price", "Booking Link"}
	rows := make([][]string, 0, len(plan.Flights))
	for _, fl := range plan.Flights {
		rows = append(rows, []string{fl.Airline, fl.Departure, fl.Arrival, fl.Duration, fl.Price, fl.BookingLink})
	}
	return writeSheet(f, SheetFlights, headers, rows)
}

func writeHotels(f *excelize.File, plan *model.TravelPlan) error {
	headers := []string{"Hotel Name", "Rating", "Price per Night", "Total Cost", "Location", "Booking Link", "Map Link"}
	rows := make([][]string, 0, len(plan.Hotels))
	for _, h := range plan.Hotels {
		rows = append(rows, []string{h.Name, h.Rating, h.PricePerNight, h.TotalCost, h.Location, h.BookingLink, h.MapLink})
	}
	return writeSheet(f, SheetHotels, headers, rows)
}

func writeItinerary(f *excelize.File, plan *model.TravelPlan) error {
	headers := []string{"Day", "Date", "Time", "Activity Type", "Activity/Location", "Duration", "Cost", "Transportation", "Notes", "Map Link"}
	rows := make([][]string, 0, len(plan.Itinerary))
	for _, e := range plan.Itinerary {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Day), e.Date, e.Time, e.ActivityType, e.Activity,
			e.Duration, e.Cost, e.Transport, e.Notes, e.MapLink,
		})
	}
	return writeSheet(f, SheetItinerary, headers, rows)
}

func writeBudget(f *excelize.File, plan *model.TravelPlan) error {
	headers := []string{"Item", "Amount"}
	rows := make([][]string, 0, len(plan.Budget))
	for _, b := range plan.Budget {
		rows = append(rows, []string{b.Item, b.Amount})
	}
	return writeSheet(f, SheetBudget, headers, rows)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s failed: %w", name, err)
	}
	for col, h := range headers {
		if err := setCell(f, name, col+1, 1, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for col, value := range row {
			if err := setCell(f, name, col+1, r+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCell writes one value; markdown-link and bare-URL cells become real
// hyperlinks with their display text.
func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	display := value
	link := ""
	if m := markdownLinkRe.FindStringSubmatch(value); m != nil {
		display, link = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	} else if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		link = value
	}

	if err := f.SetCellValue(sheet, cellName, display); err != nil {
		return fmt.Errorf("set cell %s!%s failed: %w", sheet, cellName, err)
	}
	if link != "" {
		if err := f.SetCellHyperLink(sheet, cellName, link, "External"); err != nil {
			return fmt.Errorf("set hyperlink %s!%s failed: %w", sheet, cellName, err)
		}
	}
	return nil
}
