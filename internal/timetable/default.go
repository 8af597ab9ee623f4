package timetable

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var bells = []Clock{
	NewClock(8, 30),
	NewClock(9, 25),
	NewClock(10, 30),
	NewClock(11, 25),
	NewClock(12, 20),
	NewClock(13, 15),
	NewClock(14, 20),
}

func day(subjects ...string) []Lesson {
	lessons := make([]Lesson, len(subjects))
	for i, subject := range subjects {
		lessons[i] = Lesson{Start: bells[i], Subject: subject}
	}
	return lessons
}

// Default is the class timetable the bot ships with.
func Default() *Timetable {
	return New(map[time.Weekday][]Lesson{
		time.Monday: day(
			"Разговоры о важном", "Геометрия", "География", "Английский язык",
			"Индивидуальный проект", "Вероятность и статистика", "Физика",
		),
		time.Tuesday: day(
			"Русский язык", "Обществознание", "История", "Алгебра",
			"Литература", "Английский язык", "Биология",
		),
		time.Wednesday: day(
			"Алгебра", "Физкультура", "Русский язык", "Геометрия",
			"Английский язык", "Алгебра", "Литература",
		),
		time.Thursday: day(
			"История", "Литература", "Алгебра", "Обществознание",
			"Геометрия", "Физика", "Физкультура",
		),
		time.Friday: day(
			"Обществознание", "Практикум по обществознание", "Информатика", "Обществознание",
			"Химия", "ОБЗР", "ОПД",
		),
	})
}

type fileLesson struct {
	Time    string `yaml:"time"`
	Subject string `yaml:"subject"`
}

// Load reads a YAML timetable keyed by English weekday name:
//
//	monday:
//	  - time: "8:30"
//	    subject: Algebra
func Load(path string) (*Timetable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open timetable")
	}
	defer f.Close()

	var raw map[string][]fileLesson
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode timetable")
	}

	days := make(map[time.Weekday][]Lesson, len(raw))
	for name, entries := range raw {
		weekday, err := ParseWeekday(name)
		if err != nil {
			return nil, errors.Wrapf(err, "timetable day %q", name)
		}
		if _, exist := days[weekday]; exist {
			return nil, errors.Errorf("timetable day %q: %s is listed twice", name, weekday)
		}
		lessons := make([]Lesson, 0, len(entries))
		for _, entry := range entries {
			start, err := ParseClock(entry.Time)
			if err != nil {
				return nil, errors.Wrapf(err, "timetable %s", name)
			}
			if entry.Subject == "" {
				return nil, errors.Errorf("timetable %s %s: empty subject", name, entry.Time)
			}
			lessons = append(lessons, Lesson{Start: start, Subject: entry.Subject})
		}
		days[weekday] = lessons
	}
	return New(days), nil
}
