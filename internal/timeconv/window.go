package timeconv

import (
	"time"

	"watchchart/internal/models"
)

// LocalInputs is a pair of datetime-local form values.
type LocalInputs struct {
	Start string
	End   string
}

// DefaultWindow spans the local calendar day of now in loc: midnight to
// 23:59:59.999 local, expressed in UTC. The UTC calendar date is never used.
func DefaultWindow(now time.Time, loc *time.Location) models.TimeWindow {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return models.NewTimeWindow(start, end)
}

// DefaultInputs is DefaultWindow rendered as datetime-local values, the
// form inputs synthesised when nothing was supplied.
func DefaultInputs(now time.Time, loc *time.Location) LocalInputs {
	w := DefaultWindow(now, loc)
	return LocalInputs{
		Start: UTCToLocalInputString(w.Start, loc),
		End:   UTCToLocalInputString(w.End, loc),
	}
}

// ToUTC converts both inputs. The first failing bound aborts the conversion.
func (in LocalInputs) ToUTC(loc *time.Location) (models.TimeWindow, error) {
	start, err := LocalInputToUTC(in.Start, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}
	end, err := LocalInputToUTC(in.End, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}
	return models.NewTimeWindow(start, end), nil
}
