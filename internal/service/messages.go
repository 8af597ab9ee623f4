package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

func formDigest(weather []string, quote string, day time.Weekday, lessons []timetable.Lesson) string {
	var b strings.Builder
	b.WriteString("🌅 Доброе утро! Пусть этот день будет замечательным! ✨\n\n")

	b.WriteString("🌤 Погода сегодня:\n")
	for i, line := range weather {
		icon := "🌆"
		if i == 0 {
			icon = "🏙"
		}
		fmt.Fprintf(&b, "%s %s\n", icon, line)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "💫 Вдохновляющая цитата дня:\n✨ %s ✨\n\n", quote)

	if len(lessons) == 0 {
		b.WriteString("🎉 Сегодня выходной! Отличного отдыха! ✨")
		return b.String()
	}
	b.WriteString("📚 Расписание на сегодня:\n\n")
	for _, lesson := range lessons {
		fmt.Fprintf(&b, "⏰ %s - 📖 %s\n", lesson.Start, lesson.Subject)
	}
	b.WriteString("\n🎯 Удачного учебного дня! 🌟")
	return b.String()
}

func formLessonAlert(n Notification, lead time.Duration) string {
	return fmt.Sprintf(
		"⏰ Через %d минут начинается %d-й урок!\n\n📅 %s\n📚 Предмет: %s\n⏱ Начало в %s\n💫 Удачи на уроке! ✨",
		int(lead/time.Minute), n.Index+1, n.Day, n.Lesson.Subject, n.Lesson.Start,
	)
}

func formNoMoreLessons() string {
	return "🌟 На сегодня уроков больше нет!\n\n🎉 Можно отдыхать! ✨"
}

func formDayOffAlert() string {
	return "🎊 Сегодня выходной день!\n\n✨ Наслаждайся отдыхом! 🌟"
}

func formAnswerAdded(subject string) string {
	return fmt.Sprintf("📚 Администратор добавил ответы для предмета: %s", subject)
}

func formAnswerRemoved(subject string) string {
	return fmt.Sprintf("🗑 Администратор удалил ответы для предмета: %s", subject)
}
