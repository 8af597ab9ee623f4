package timetable

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesFor(t *testing.T) {
	tt := Default()

	tests := []struct {
		name    string
		day     time.Weekday
		wantLen int
		first   string
	}{
		{name: "monday", day: time.Monday, wantLen: 7, first: "Разговоры о важном"},
		{name: "friday", day: time.Friday, wantLen: 7, first: "Обществознание"},
		{name: "saturday", day: time.Saturday},
		{name: "sunday", day: time.Sunday},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := tt.EntriesFor(tc.day)
			assert.Len(t, entries, tc.wantLen)
			assert.Equal(t, tc.wantLen > 0, tt.HasDay(tc.day))
			if tc.wantLen > 0 {
				assert.Equal(t, tc.first, entries[0].Subject)
				assert.Equal(t, NewClock(8, 30), entries[0].Start)
			}
		})
	}
}

func TestEntriesForReturnsCopy(t *testing.T) {
	tt := Default()
	entries := tt.EntriesFor(time.Monday)
	entries[0].Subject = "changed"
	assert.Equal(t, "Разговоры о важном", tt.EntriesFor(time.Monday)[0].Subject)
}

func TestNewDropsEmptyDays(t *testing.T) {
	tt := New(map[time.Weekday][]Lesson{
		time.Monday:   {{Start: NewClock(9, 0), Subject: "Math"}},
		time.Saturday: {},
	})
	assert.True(t, tt.HasDay(time.Monday))
	assert.False(t, tt.HasDay(time.Saturday))
	assert.Equal(t, []time.Weekday{time.Monday}, tt.Days())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "8:30", want: NewClock(8, 30)},
		{in: "08:30", want: NewClock(8, 30)},
		{in: "23:59", want: NewClock(23, 59)},
		{in: "24:00", wantErr: true},
		{in: "8:3", wantErr: true},
		{in: "830", wantErr: true},
		{in: "a:bc", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClockAddAndString(t *testing.T) {
	assert.Equal(t, "8:20", NewClock(8, 30).Add(-10*time.Minute).String())
	assert.Equal(t, "23:55", NewClock(0, 5).Add(-10*time.Minute).String())
	assert.Equal(t, "0:05", NewClock(23, 55).Add(10*time.Minute).String())
	assert.Equal(t, NewClock(7, 30), ClockOf(time.Date(2024, 1, 1, 7, 30, 59, 0, time.UTC)))
}

func TestNext(t *testing.T) {
	tt := Default()

	lesson, idx, ok := tt.Next(time.Monday, NewClock(9, 0))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "Геометрия", lesson.Subject)

	_, _, ok = tt.Next(time.Monday, NewClock(8, 30))
	assert.True(t, ok, "a lesson starting now is not next")

	_, _, ok = tt.Next(time.Monday, NewClock(14, 20))
	assert.False(t, ok)

	_, _, ok = tt.Next(time.Sunday, NewClock(6, 0))
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	tt := New(map[time.Weekday][]Lesson{
		time.Monday:  {{NewClock(8, 0), "Math"}, {NewClock(9, 0), "Art"}},
		time.Tuesday: {{NewClock(8, 0), "Math"}, {NewClock(9, 0), "Bio"}},
	})
	stats := tt.Stats()

	assert.Equal(t, 4, stats.Total)
	require.Len(t, stats.Subjects, 3)
	assert.Equal(t, SubjectStat{Subject: "Math", Count: 2, Percent: 50}, stats.Subjects[0])
	assert.Equal(t, "Art", stats.Subjects[1].Subject)
	assert.Equal(t, "Bio", stats.Subjects[2].Subject)
	assert.InDelta(t, 25.0, stats.Subjects[1].Percent, 0.001)
}

func TestFind(t *testing.T) {
	tt := Default()

	matches := tt.Find("ФИЗ")
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Contains(t, []string{"Физика", "Физкультура"}, m.Lesson.Subject)
	}
	assert.Equal(t, time.Monday, matches[0].Day)

	assert.Empty(t, tt.Find("латынь"))
	assert.Empty(t, tt.Find("  "))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "Monday", want: time.Monday},
		{in: "friday", want: time.Friday},
		{in: "SAT", want: time.Saturday},
		{in: "su", wantErr: true},
		{in: "понедельник", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseWeekday(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	content := `
monday:
  - time: "8:30"
    subject: Algebra
  - time: "09:25"
    subject: Physics
wednesday:
  - time: "10:00"
    subject: Chemistry
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tt, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Lesson{
		{Start: NewClock(8, 30), Subject: "Algebra"},
		{Start: NewClock(9, 25), Subject: "Physics"},
	}, tt.EntriesFor(time.Monday))
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, tt.Days())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad day", content: "funday:\n  - time: \"8:30\"\n    subject: X\n"},
		{name: "bad time", content: "monday:\n  - time: \"8.30\"\n    subject: X\n"},
		{name: "empty subject", content: "monday:\n  - time: \"8:30\"\n"},
		{name: "same day twice", content: "monday:\n  - time: \"8:30\"\n    subject: X\nmon:\n  - time: \"9:25\"\n    subject: Y\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNewOrdersLessonsByStart(t *testing.T) {
	tt := New(map[time.Weekday][]Lesson{
		time.Monday: {
			{Start: NewClock(10, 30), Subject: "Chemistry"},
			{Start: NewClock(8, 30), Subject: "Algebra"},
			{Start: NewClock(9, 25), Subject: "Physics"},
		},
	})

	assert.Equal(t, []Lesson{
		{Start: NewClock(8, 30), Subject: "Algebra"},
		{Start: NewClock(9, 25), Subject: "Physics"},
		{Start: NewClock(10, 30), Subject: "Chemistry"},
	}, tt.EntriesFor(time.Monday))

	lesson, index, ok := tt.Next(time.Monday, NewClock(8, 0))
	require.True(t, ok)
	assert.Equal(t, "Algebra", lesson.Subject)
	assert.Equal(t, 0, index)
}

func TestLoadUnorderedDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.yaml")
	content := `
tuesday:
  - time: "11:25"
    subject: Biology
  - time: "8:30"
    subject: Geometry
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tt, err := Load(path)
	require.NoError(t, err)

	lesson, index, ok := tt.Next(time.Tuesday, NewClock(7, 0))
	require.True(t, ok)
	assert.Equal(t, "Geometry", lesson.Subject)
	assert.Equal(t, 0, index)
}
