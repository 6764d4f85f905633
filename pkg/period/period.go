package period

import (
	"fmt"
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
)

const DateLayout = "2006-01-02"

type Timeframe string

const (
	Daily     Timeframe = "Daily"
	Weekly    Timeframe = "Weekly"
	Monthly   Timeframe = "Monthly"
	Quarterly Timeframe = "Quarterly"
	Yearly    Timeframe = "Yearly"
)

var timeframes = [...]Timeframe{Daily, Weekly, Monthly, Quarterly, Yearly}

func (tf Timeframe) IsValid() bool {
	for _, known := range timeframes {
		if known == tf {
			return true
		}
	}
	return false
}

func ParseTimeframe(value string) (Timeframe, error) {
	tf := Timeframe(value)
	if !tf.IsValid() {
		return "", apperr.Invalid("Timeframe must be one of the following: 'Daily', 'Weekly', 'Monthly', 'Quarterly', 'Yearly'.")
	}
	return tf, nil
}

// Period is an inclusive range of calendar days, both ends at midnight UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls on or between Start and End.
func (p Period) Contains(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(DateLayout), p.End.Format(DateLayout))
}

// DateOf truncates t to midnight UTC of its calendar day, as seen in t's own location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar day.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// Month is the first through last day of ref's month.
func Month(ref time.Time) Period {
	start := Date(ref.Year(), ref.Month(), 1)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// Resolve returns the period of kind tf that contains ref. Weeks run Monday to Sunday,
// quarters start in January, April, July and October. An unknown timeframe resolves to ref's day.
func Resolve(tf Timeframe, ref time.Time) Period {
	day := DateOf(ref)
	switch tf {
	case Weekly:
		delta := (int(day.Weekday()) - int(time.Monday) + 7) % 7
		start := day.AddDate(0, 0, -delta)
		return Period{Start: start, End: start.AddDate(0, 0, 6)}
	case Monthly:
		return Month(day)
	case Quarterly:
		firstMonth := time.Month((int(day.Month())-1)/3*3 + 1)
		start := Date(day.Year(), firstMonth, 1)
		return Period{Start: start, End: start.AddDate(0, 3, -1)}
	case Yearly:
		return Period{Start: Date(day.Year(), time.January, 1), End: Date(day.Year(), time.December, 31)}
	default:
		return Period{Start: day, End: day}
	}
}
