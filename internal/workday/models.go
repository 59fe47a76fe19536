package workday

import "time"

// Task is one checklist entry on a day record.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the single work session of a (owner, day) pair. Duration is
// cumulative seconds across every start/stop pair on that day, not the
// last interval alone. IsActive is true exactly when StartTime is set.
type Session struct {
	Date            string     `json:"date"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds int        `json:"duration"`
	IsActive        bool       `json:"is_active"`
}

// DisplayedElapsed is what a ticking timer should show at instant now:
// accumulated duration plus the open interval if one is running. Purely
// presentational; persisted duration only moves on stop.
func (s Session) DisplayedElapsed(now time.Time) int {
	total := s.DurationSeconds
	if s.IsActive && s.StartTime != nil {
		if d := int(now.Sub(*s.StartTime).Seconds()); d > 0 {
			total += d
		}
	}
	return total
}

// DayRecord aggregates the tasks and work session of one calendar day
// for one owner.
type DayRecord struct {
	Date    string  `json:"date"`
	Tasks   []Task  `json:"tasks"`
	Session Session `json:"work_session"`
}

// EmptyDay is the placeholder for a day with no stored activity.
func EmptyDay(date string) DayRecord {
	return DayRecord{
		Date:    date,
		Tasks:   []Task{},
		Session: Session{Date: date},
	}
}
