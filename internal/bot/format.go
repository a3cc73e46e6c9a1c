package bot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/recallbot/internal/excel"
	"github.com/example/recallbot/pkg/models"
)

const roundOverText = "This round is over. Tap 🎯 Study to start a new one."

const importInstructions = `📝 Send a word list as a document (.xlsx, .csv or .json).

Columns, starting from the second row:
A: word, B: meaning, C: pronunciation, D: example, E: translation, F: note

Existing words are updated, their review history is kept.`

func formatWelcome(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("👋 Hi, %s!\n\n"+
		"I show you words in small rounds and schedule each one just before you would forget it.\n"+
		"Rate every card honestly: Forgot, Remembered or Perfect.", name)
}

func helpText(admin bool) string {
	var sb strings.Builder
	sb.WriteString("/study - start a round\n")
	sb.WriteString("/stats - your progress\n")
	sb.WriteString("/settings - reminders and reset\n")
	sb.WriteString("/due - check for cards waiting now\n")
	sb.WriteString("/history <word> - your answers for a word\n")
	sb.WriteString("/remind <hour>|off - daily reminder time\n")
	sb.WriteString("/reset - forget all review history\n")
	if admin {
		sb.WriteString("/import - upload a word list\n")
		sb.WriteString("/delete <word> - remove a word from the pool\n")
	}
	return sb.String()
}

func formatCardFront(word models.Word, current, total int, retry bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d", current, total)
	if retry {
		sb.WriteString(" 🔁")
	}
	fmt.Fprintf(&sb, "\n\n📖 %s", word.Word)
	if word.Pronunciation != "" {
		fmt.Fprintf(&sb, "\n%s", word.Pronunciation)
	}
	return sb.String()
}

func formatCardBack(word models.Word) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 %s", word.Word)
	if word.Pronunciation != "" {
		fmt.Fprintf(&sb, " %s", word.Pronunciation)
	}
	fmt.Fprintf(&sb, "\n\n💡 %s", word.Meaning)
	if word.Example != "" {
		fmt.Fprintf(&sb, "\n\n✏️ %s", word.Example)
	}
	if word.Translation != "" {
		fmt.Fprintf(&sb, "\n%s", word.Translation)
	}
	if word.Note != "" {
		fmt.Fprintf(&sb, "\n\n📌 %s", word.Note)
	}
	return sb.String()
}

// formatFeedback fits in a callback toast.
func formatFeedback(rating models.Rating, card models.CardState, now time.Time) string {
	if rating == models.RatingForgot {
		return "It will come back later in this round"
	}
	if card.Due == 0 {
		return "Saved"
	}
	return "Next review in " + humanizeInterval(time.UnixMilli(card.Due).Sub(now))
}

func humanizeInterval(d time.Duration) string {
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d min", max(1, int(math.Round(d.Minutes()))))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h", int(math.Round(d.Hours())))
	default:
		days := int(math.Round(d.Hours() / 24))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
}

func formatStats(stats models.UserStats) string {
	var sb strings.Builder
	sb.WriteString("📊 Your progress\n\n")
	fmt.Fprintf(&sb, "Words learned: %d/%d\n", stats.LearnedWords, stats.TotalWords)
	fmt.Fprintf(&sb, "Due now: %d\n", stats.DueNow)
	fmt.Fprintf(&sb, "Reviews: %d (lapses: %d)\n", stats.TotalReps, stats.TotalLapses)
	if stats.LearnedWords > 0 {
		fmt.Fprintf(&sb, "Average recall: %.0f%%\n", stats.MeanRetrievability*100)
	}
	fmt.Fprintf(&sb, "\nToday: %d answers, %s", stats.ReviewedToday, formatStudyTime(stats.StudyTimeTodaySec))
	return sb.String()
}

func formatStudyTime(sec float64) string {
	d := time.Duration(sec * float64(time.Second)).Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatSettings(user models.User) string {
	if !user.NotificationEnabled {
		return "⚙️ Settings\n\nDaily reminder: off"
	}
	return fmt.Sprintf("⚙️ Settings\n\nDaily reminder: %02d:00", user.NotificationHour)
}

// historyLimit is the number of most recent answers listed by /history.
const historyLimit = 10

func formatHistory(key string, logs []models.StudyLog, now time.Time) string {
	if len(logs) == 0 {
		return fmt.Sprintf("📜 %s\n\nNo answers yet.", key)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📜 %s (%d answers)\n", key, len(logs))
	if len(logs) > historyLimit {
		logs = logs[len(logs)-historyLimit:]
	}
	for _, entry := range logs {
		ago := humanizeInterval(now.Sub(time.UnixMilli(entry.Timestamp)))
		fmt.Fprintf(&sb, "\n%s %s ago (was %s)", ratingEmoji(entry.Rating), ago, entry.State)
	}
	return sb.String()
}

func ratingEmoji(r models.Rating) string {
	switch r {
	case models.RatingForgot:
		return "❌"
	case models.RatingRemembered:
		return "🙂"
	case models.RatingPerfect:
		return "🌟"
	default:
		return "•"
	}
}

func formatReminder(due int) string {
	if due == 1 {
		return "⏰ 1 word is waiting for review."
	}
	return fmt.Sprintf("⏰ %d words are waiting for review.", due)
}

func formatImportResult(result *excel.ImportResult) string {
	var sb strings.Builder
	sb.WriteString("✅ Import finished\n\n")
	fmt.Fprintf(&sb, "Rows: %d\nCreated: %d\nUpdated: %d\nSkipped: %d", result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&sb, "\nDuplicates: %s", strings.Join(truncateList(result.Duplicates, 10), ", "))
	}
	if len(result.Errors) > 0 {
		sb.WriteString("\n\nProblems:\n")
		sb.WriteString(strings.Join(truncateList(result.Errors, 10), "\n"))
	}
	return sb.String()
}

func truncateList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	out := append([]string(nil), items[:n]...)
	return append(out, fmt.Sprintf("... and %d more", len(items)-n))
}
