package progress

import (
	"time"

	"github.com/jinzhu/now"
)

// DayState is the render state of one calendar cell.
type DayState string

// Possible cell states. Today wins over completed so the view always
// highlights the current date.
const (
	DayStatePlain     DayState = "plain"
	DayStateCompleted DayState = "completed"
	DayStateToday     DayState = "today"
)

// DayCell is one day of the month view.
type DayCell struct {
	Day   int      `json:"day"`
	State DayState `json:"state"`
}

// MonthView is the month layout consumed by calendar renderers: one cell
// per day plus the number of blank cells before the 1st when the grid
// starts its weeks on Sunday.
type MonthView struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	LeadingBlanks int        `json:"leading_blanks"`
	Cells         []DayCell  `json:"cells"`
}

// buildMonthView lays out one month. Dates in completed that fall
// outside the requested month are ignored; today only marks a cell when
// it lands inside the month. LeadingBlanks is the weekday index of the
// 1st with Sunday as 0, so a month starting on Wednesday gets three
// blanks.
func buildMonthView(
	year int,
	month time.Month,
	completed []time.Time,
	today time.Time,
) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := now.New(first).EndOfMonth().Day()

	done := make(map[int]bool, len(completed))
	for _, d := range completed {
		y, m, dayOfMonth := d.Date()
		if y == year && m == month {
			done[dayOfMonth] = true
		}
	}

	todayDay := 0
	if y, m, d := today.Date(); y == year && m == month {
		todayDay = d
	}

	view := MonthView{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Cells:         make([]DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		state := DayStatePlain
		switch {
		case day == todayDay:
			state = DayStateToday
		case done[day]:
			state = DayStateCompleted
		}
		view.Cells = append(view.Cells, DayCell{Day: day, State: state})
	}

	return view
}
