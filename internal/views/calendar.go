package views

import (
	"time"

	"github.com/barberdev/barberdev-web/internal/domain/appointment"
)

// CalendarView selects how the collection is presented. Table and cards are
// flat lists; month, week and day are calendar windows.
type CalendarView string

const (
	ViewTable CalendarView = "table"
	ViewCards CalendarView = "cards"
	ViewMonth CalendarView = "month"
	ViewWeek  CalendarView = "week"
	ViewDay   CalendarView = "day"
)

// CalendarDay is one cell: a date plus the rows scheduled on it.
type CalendarDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Today bool   `json:"today"`
	Rows  []Row  `json:"rows"`
}

// Calendar is the month/week/day presentation over an enriched collection.
type Calendar struct {
	View  CalendarView  `json:"view"`
	Title string        `json:"title"`
	Days  []CalendarDay `json:"days"`
}

// GroupByDate buckets rows under their YYYY-MM-DD key.
func GroupByDate(rows []Row) map[string][]Row {
	grouped := make(map[string][]Row)
	for _, r := range rows {
		grouped[r.Date] = append(grouped[r.Date], r)
	}
	return grouped
}

// BuildCalendar lays out the window around current for the requested view.
func BuildCalendar(actor appointment.Actor, aps []appointment.Appointment, view CalendarView, current time.Time) Calendar {
	rows := Rows(actor, aps)
	grouped := GroupByDate(rows)

	var days []time.Time
	var title string

	switch view {
	case ViewWeek:
		days = weekDays(current)
		title = days[0].Format("02/01") + " – " + days[6].Format("02/01/2006")
	case ViewDay:
		days = []time.Time{current}
		title = current.Format("02/01/2006")
	default:
		view = ViewMonth
		days = monthDays(current)
		title = monthTitle(current)
	}

	today := time.Now().In(current.Location()).Format("2006-01-02")

	out := Calendar{View: view, Title: title}
	for _, d := range days {
		key := d.Format("2006-01-02")
		out.Days = append(out.Days, CalendarDay{
			Date:  key,
			Today: key == today,
			Rows:  grouped[key],
		})
	}
	return out
}

func monthDays(current time.Time) []time.Time {
	start := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
	end := start.AddDate(0, 1, 0)

	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// weekDays spans Sunday through Saturday around current.
func weekDays(current time.Time) []time.Time {
	start := current.AddDate(0, 0, -int(current.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func monthTitle(t time.Time) string {
	return spanishMonths[int(t.Month())-1] + " " + t.Format("2006")
}
