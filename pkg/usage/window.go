package usage

import "time"

// MonthWindow returns the calendar month containing ref in loc:
// start inclusive at 00:00 on the 1st, end exclusive at 00:00 on the 1st of the next month.
func MonthWindow(ref time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	r := ref.In(loc)
	start = time.Date(r.Year(), r.Month(), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}
