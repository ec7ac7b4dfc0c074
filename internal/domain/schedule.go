package domain

// ScheduleItem is one activity on a day of the weekly schedule.
type ScheduleItem struct {
	Kind        ActivityKind
	Title       string
	Time        string
	Audience    string
	Description string
	Instructor  string
	LessonID    string
	ImageURL    string
}

// DaySchedule groups the ordered activities of one day.
type DaySchedule struct {
	Day   string
	Date  string
	Items []ScheduleItem
}

// Clone returns a deep copy so callers can read it outside the owner's lock.
func (d DaySchedule) Clone() DaySchedule {
	d.Items = append([]ScheduleItem(nil), d.Items...)
	return d
}
