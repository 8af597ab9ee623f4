package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrUnknownWeekday = errors.New("unknown weekday")

// Clock is a time of day in minutes since midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ClockOf truncates t to minute resolution in t's own location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

// ParseClock accepts "8:30" and "08:30".
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, errors.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, errors.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, errors.Errorf("invalid minute in %q", s)
	}
	return NewClock(hour, minute), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour(), c.Minute())
}

// Add shifts the clock by d, wrapping around midnight.
func (c Clock) Add(d time.Duration) Clock {
	const day = 24 * 60
	m := (int(c) + int(d/time.Minute)) % day
	if m < 0 {
		m += day
	}
	return Clock(m)
}

type Lesson struct {
	Start   Clock
	Subject string
}

// Timetable is an immutable weekly schedule. A weekday without a key has no lessons.
type Timetable struct {
	days map[time.Weekday][]Lesson
}

// New copies days, ordering each day's lessons by start time.
func New(days map[time.Weekday][]Lesson) *Timetable {
	t := &Timetable{days: make(map[time.Weekday][]Lesson, len(days))}
	for day, lessons := range days {
		if len(lessons) == 0 {
			continue
		}
		sorted := append([]Lesson(nil), lessons...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		t.days[day] = sorted
	}
	return t
}

// EntriesFor returns the day's lessons in order, or nil for a day off.
func (t *Timetable) EntriesFor(day time.Weekday) []Lesson {
	lessons, ok := t.days[day]
	if !ok {
		return nil
	}
	return append([]Lesson(nil), lessons...)
}

func (t *Timetable) HasDay(day time.Weekday) bool {
	_, ok := t.days[day]
	return ok
}

// Days lists the populated weekdays from Monday to Sunday.
func (t *Timetable) Days() []time.Weekday {
	var days []time.Weekday
	for _, day := range weekOrder {
		if t.HasDay(day) {
			days = append(days, day)
		}
	}
	return days
}

func (t *Timetable) AllEntries() map[time.Weekday][]Lesson {
	all := make(map[time.Weekday][]Lesson, len(t.days))
	for day, lessons := range t.days {
		all[day] = append([]Lesson(nil), lessons...)
	}
	return all
}

// Next returns the first lesson of day starting strictly after now, with its index.
func (t *Timetable) Next(day time.Weekday, now Clock) (Lesson, int, bool) {
	for i, lesson := range t.days[day] {
		if lesson.Start > now {
			return lesson, i, true
		}
	}
	return Lesson{}, 0, false
}

type SubjectStat struct {
	Subject string
	Count   int
	Percent float64
}

type Stats struct {
	Subjects []SubjectStat
	Total    int
}

// Stats counts lessons per subject over the week, most frequent first.
func (t *Timetable) Stats() Stats {
	counts := make(map[string]int)
	total := 0
	for _, lessons := range t.days {
		for _, lesson := range lessons {
			counts[lesson.Subject]++
			total++
		}
	}

	stats := Stats{Total: total, Subjects: make([]SubjectStat, 0, len(counts))}
	for subject, count := range counts {
		stats.Subjects = append(stats.Subjects, SubjectStat{
			Subject: subject,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(stats.Subjects, func(i, j int) bool {
		a, b := stats.Subjects[i], stats.Subjects[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Subject < b.Subject
	})
	return stats
}

type Match struct {
	Day    time.Weekday
	Lesson Lesson
}

// Find does a case-insensitive substring search over subjects, in week order.
func (t *Timetable) Find(term string) []Match {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var matches []Match
	for _, day := range t.Days() {
		for _, lesson := range t.days[day] {
			if strings.Contains(strings.ToLower(lesson.Subject), term) {
				matches = append(matches, Match{Day: day, Lesson: lesson})
			}
		}
	}
	return matches
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// ParseWeekday understands English names and their three-letter forms, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, ErrUnknownWeekday
	}
	for _, day := range weekOrder {
		name := strings.ToLower(day.String())
		if s == name || s == name[:3] {
			return day, nil
		}
	}
	return 0, ErrUnknownWeekday
}
