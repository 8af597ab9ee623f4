package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

// Telegram's limit for a text message.
const messageLimit = 4096

func checkWeekDay(message string, weekDay *time.Weekday) bool {
	day, err := timetable.ParseWeekday(message)
	if err != nil {
		return false
	}
	*weekDay = day
	return true
}

func formDaySchedule(day time.Weekday, lessons []timetable.Lesson, today bool) string {
	text := "🎯 Расписание уроков:\n\n"
	if len(lessons) == 0 {
		if today {
			return text + "🌟 Сегодня выходной день! Отдыхаем! 🎉"
		}
		return text + fmt.Sprintf("🌟 %s - выходной день! Отдыхаем! 🎉", day)
	}

	text += fmt.Sprintf("📅 День: %s\n\n", day)
	for _, lesson := range lessons {
		text += fmt.Sprintf("⏰ %s - 📚 %s\n", lesson.Start, lesson.Subject)
	}
	return text
}

func formScheduleUsage() string {
	return `⚠️ Пожалуйста, укажи день недели на английском:

✨ Monday - Понедельник
✨ Tuesday - Вторник
✨ Wednesday - Среда
✨ Thursday - Четверг
✨ Friday - Пятница`
}

func formWeekSchedule(tt *timetable.Timetable) string {
	var b strings.Builder
	b.WriteString("🗓 Расписание на неделю:\n\n")
	for _, day := range tt.Days() {
		fmt.Fprintf(&b, "✨ %s\n", day)
		for _, lesson := range tt.EntriesFor(day) {
			fmt.Fprintf(&b, "⏰ %s - 📚 %s\n", lesson.Start, lesson.Subject)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formNextLesson(tt *timetable.Timetable, now time.Time) string {
	day := now.Weekday()
	if !tt.HasDay(day) {
		return "🎊 Сегодня выходной день!\n\n✨ Наслаждайся отдыхом! 🌟"
	}

	lesson, _, ok := tt.Next(day, timetable.ClockOf(now))
	if !ok {
		return "🌟 На сегодня уроков больше нет!\n\n🎉 Можно отдыхать!"
	}

	elapsed := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute + time.Duration(now.Second())*time.Second
	until := time.Duration(lesson.Start)*time.Minute - elapsed
	hours := int(until / time.Hour)
	minutes := int(until % time.Hour / time.Minute)

	return fmt.Sprintf(
		"🎯 Следующий урок:\n\n📚 Предмет: %s\n⏰ Начало в %s\n⏳ До начала: %d ч. %d мин.\n💫 Удачи на уроке! ✨",
		lesson.Subject, lesson.Start, hours, minutes,
	)
}

func formStats(stats timetable.Stats) string {
	var b strings.Builder
	b.WriteString("✨ Статистика по предметам ✨\n\n")
	for _, s := range stats.Subjects {
		fmt.Fprintf(&b, "📚 %s:\n   %d уроков (%.1f%%) %s\n\n", s.Subject, s.Count, s.Percent, strings.Repeat("🌟", s.Count/2))
	}
	fmt.Fprintf(&b, "🎯 Всего %d уроков в неделю! 🎉", stats.Total)
	return b.String()
}

func formFindUsage() string {
	return `✨ Как использовать поиск:

🔍 Напиши: /find [название предмета]
📝 Например: /find Математика

💫 И я найду все уроки по этому предмету!`
}

func formFindResult(term string, matches []timetable.Match) string {
	term = strings.ToLower(term)
	if len(matches) == 0 {
		return fmt.Sprintf("❌ По запросу '%s' ничего не найдено\n\n💡 Попробуй другой запрос!", term)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Результаты поиска '%s':\n\n", term)
	for _, m := range matches {
		fmt.Fprintf(&b, "📅 %s\n⏰ %s - 📚 %s\n\n", m.Day, m.Lesson.Start, m.Lesson.Subject)
	}
	b.WriteString("✨ Удачи в учебе! 🌟")
	return b.String()
}

func formAnswersList(subjects []string) string {
	if len(subjects) == 0 {
		return "📚 Список ответов пуст"
	}
	text := "📚 Доступные предметы с ответами:\n\n"
	for _, subject := range subjects {
		text += fmt.Sprintf("• %s\n", subject)
	}
	return text
}

func formUsage(command string) string {
	return fmt.Sprintf("❗️ Укажите предмет после команды, например:\n/%s Математика", command)
}

func formHelpMessage() string {
	return `👋 Привет! Я бот для управления расписанием.

📚 Доступные команды:
• /schedule [день] - расписание на сегодня или на указанный день
• /week - показать расписание на всю неделю
• /next - информация о следующем уроке
• /find предмет - найти уроки по предмету
• /stats - статистика по предметам

📝 Работа с ответами:
• /get_answer предмет - получить ответы по предмету
• /list_answer - список предметов с ответами

👨‍💼 Команды администратора:
• /add_answer предмет - добавить ответы для предмета
• /del_answer предмет - удалить ответы для предмета
• /done - завершить добавление ответов`
}

func formServerErr() string {
	return "❌ Произошла ошибка при выполнении команды"
}

// splitMessage cuts text into chunks of at most limit characters, on line
// boundaries where possible.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current []rune
	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		if len(current)+len(runes) > limit && len(current) > 0 {
			chunks = append(chunks, string(current))
			current = nil
		}
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		current = append(current, runes...)
	}
	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}
	return chunks
}
