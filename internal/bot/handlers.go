package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/recallbot/internal/database"
	"github.com/example/recallbot/internal/spaced_repetition"
	"github.com/example/recallbot/internal/study"
	"github.com/example/recallbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	cbStudy        = "start_learning"
	cbStats        = "show_stats"
	cbSettings     = "settings"
	cbMainMenu     = "main_menu"
	cbNotifyToggle = "notification_toggle"
	cbNotifyTime   = "notification_time"
	cbReset        = "reset_progress"
	cbResetConfirm = "reset_confirm"

	prefixReveal     = "reveal_"
	prefixRate       = "rate_"
	prefixNotifyHour = "set_notification_time_"
)

var notificationHours = []int{9, 12, 15, 18, 21}

// HandleMessage routes a plain message, a command or an uploaded document.
func (b *Bot) HandleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.Document != nil {
		return b.handleDocument(ctx, message)
	}
	if message.IsCommand() {
		return b.HandleCommand(ctx, message)
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "Use the menu below or /help.")
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	return b.send(msg)
}

func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch message.Command() {
	case "start":
		if err := b.ensureUser(ctx, message.From); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, formatWelcome(message.From.FirstName))
		msg.ReplyMarkup = createKeyboard(MainMenuButtons())
		return b.send(msg)
	case "help":
		return b.sendText(chatID, helpText(b.cfg.IsAdmin(userID)))
	case "study":
		return b.startStudy(ctx, chatID, message.From)
	case "stats":
		return b.showStats(ctx, chatID, userID)
	case "settings":
		return b.showSettings(ctx, chatID, message.From)
	case "remind":
		return b.handleRemindCommand(ctx, chatID, message.From, message.CommandArguments())
	case "due":
		return b.checkDue(ctx, chatID, userID)
	case "history":
		return b.showHistory(ctx, chatID, userID, strings.TrimSpace(message.CommandArguments()))
	case "delete":
		if !b.cfg.IsAdmin(userID) {
			return b.sendText(chatID, "Only administrators can delete words.")
		}
		return b.deleteWord(ctx, chatID, strings.TrimSpace(message.CommandArguments()))
	case "reset":
		msg := tgbotapi.NewMessage(chatID, "This deletes all of your review history. Continue?")
		msg.ReplyMarkup = resetKeyboard()
		return b.send(msg)
	case "import":
		if !b.cfg.IsAdmin(userID) {
			return b.sendText(chatID, "Only administrators can import words.")
		}
		b.setAwaitingFile(userID, true)
		return b.sendText(chatID, importInstructions)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID
	data := callback.Data

	switch {
	case data == cbStudy:
		b.answerCallback(callback, "")
		return b.startStudy(ctx, chatID, callback.From)
	case data == cbStats:
		b.answerCallback(callback, "")
		return b.showStats(ctx, chatID, userID)
	case data == cbSettings:
		b.answerCallback(callback, "")
		return b.showSettings(ctx, chatID, callback.From)
	case data == cbMainMenu:
		b.answerCallback(callback, "")
		msg := tgbotapi.NewMessage(chatID, "Main menu")
		msg.ReplyMarkup = createKeyboard(MainMenuButtons())
		return b.send(msg)
	case data == cbNotifyToggle:
		return b.toggleNotifications(ctx, callback)
	case data == cbNotifyTime:
		b.answerCallback(callback, "")
		msg := tgbotapi.NewMessage(chatID, "When should I remind you?")
		msg.ReplyMarkup = notificationHourKeyboard()
		return b.send(msg)
	case strings.HasPrefix(data, prefixNotifyHour):
		hour, err := strconv.Atoi(strings.TrimPrefix(data, prefixNotifyHour))
		if err != nil || hour < 0 || hour > 23 {
			b.answerCallback(callback, "Invalid hour")
			return nil
		}
		b.answerCallback(callback, "")
		return b.setNotificationHour(ctx, chatID, callback.From, hour)
	case data == cbReset:
		b.answerCallback(callback, "")
		msg := tgbotapi.NewMessage(chatID, "This deletes all of your review history. Continue?")
		msg.ReplyMarkup = resetKeyboard()
		return b.send(msg)
	case data == cbResetConfirm:
		b.answerCallback(callback, "")
		if err := b.study.Reset(ctx, userID); err != nil {
			_ = b.sendText(chatID, "Could not reset your progress. Please try again later.")
			return fmt.Errorf("failed to reset progress: %w", err)
		}
		return b.sendText(chatID, "Your progress has been reset.")
	case strings.HasPrefix(data, prefixReveal):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, prefixReveal))
		if err != nil {
			b.answerCallback(callback, "")
			return nil
		}
		b.answerCallback(callback, "")
		return b.revealCard(ctx, chatID, userID, idx)
	case strings.HasPrefix(data, prefixRate):
		rating, idx, err := parseRateData(data)
		if err != nil {
			b.answerCallback(callback, "")
			b.log.Warn("malformed rate callback", zap.String("data", data), zap.Error(err))
			return nil
		}
		return b.rateCard(ctx, callback, rating, idx)
	default:
		b.answerCallback(callback, "")
		b.log.Debug("unknown callback", zap.String("data", data))
		return nil
	}
}

func (b *Bot) startStudy(ctx context.Context, chatID int64, from *tgbotapi.User) error {
	if err := b.ensureUser(ctx, from); err != nil {
		return err
	}

	set, err := b.study.StartSet(ctx, from.ID, b.now())
	if err != nil {
		if errors.Is(err, study.ErrEmptyPool) {
			return b.sendText(chatID, "There are no words to study yet. An administrator can upload a word list with /import.")
		}
		_ = b.sendText(chatID, "Could not start a round. Please try again later.")
		return fmt.Errorf("failed to start study set: %w", err)
	}
	return b.presentCard(ctx, chatID, from.ID, set)
}

// presentCard shows the front of the set's next word.
func (b *Bot) presentCard(ctx context.Context, chatID, userID int64, set spaced_repetition.StudySet) error {
	key, ok := set.Next()
	if !ok {
		return b.finishSet(ctx, chatID, userID)
	}
	idx := indexOf(set.Words(), key)

	word, err := b.study.Word(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load word %q: %w", key, err)
	}

	current, total := set.Progress()
	msg := tgbotapi.NewMessage(chatID, formatCardFront(word, current+1, total, set.HasForgotten(key)))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "👀 Show answer", CallbackData: prefixReveal + strconv.Itoa(idx)}},
	})
	if err := b.send(msg); err != nil {
		return err
	}
	b.markShown(userID, b.now())
	return nil
}

func (b *Bot) revealCard(ctx context.Context, chatID, userID int64, idx int) error {
	set, ok := b.study.Current(userID)
	if !ok {
		return b.sendText(chatID, roundOverText)
	}
	key, ok := wordAt(set, idx)
	if !ok || set.IsCompleted(key) {
		return nil
	}

	word, err := b.study.Word(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load word %q: %w", key, err)
	}

	msg := tgbotapi.NewMessage(chatID, formatCardBack(word))
	msg.ReplyMarkup = ratingKeyboard(idx)
	return b.send(msg)
}

func (b *Bot) rateCard(ctx context.Context, callback *tgbotapi.CallbackQuery, rating models.Rating, idx int) error {
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	set, ok := b.study.Current(userID)
	if !ok {
		b.answerCallback(callback, "")
		return b.sendText(chatID, roundOverText)
	}
	key, ok := wordAt(set, idx)
	if !ok {
		b.answerCallback(callback, "")
		return nil
	}

	now := b.now()
	card, next, err := b.study.Answer(ctx, userID, key, rating, b.thinkTime(userID, now), now)
	switch {
	case err == nil:
	case errors.Is(err, study.ErrNoActiveSet):
		b.answerCallback(callback, "")
		return b.sendText(chatID, roundOverText)
	case errors.Is(err, study.ErrAlreadyAnswered), errors.Is(err, study.ErrUnknownWord):
		b.answerCallback(callback, "Already answered")
		return nil
	case card.Word == "":
		b.answerCallback(callback, "")
		_ = b.sendText(chatID, "Could not record the answer. Please try again.")
		return fmt.Errorf("failed to answer %q: %w", key, err)
	default:
		// The round advanced but storage failed, so the learner keeps going.
		b.log.Error("answer not persisted", zap.Int64("user_id", userID), zap.String("word", key), zap.Error(err))
	}

	b.answerCallback(callback, formatFeedback(rating, card, now))
	if next.IsComplete() {
		return b.finishSet(ctx, chatID, userID)
	}
	return b.presentCard(ctx, chatID, userID, next)
}

func (b *Bot) finishSet(ctx context.Context, chatID, userID int64) error {
	text := "🎉 Round complete!"
	if stats, err := b.study.Stats(ctx, userID, b.now()); err == nil {
		text += "\n\n" + formatStats(stats)
	} else {
		b.log.Warn("failed to load stats", zap.Int64("user_id", userID), zap.Error(err))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "🔁 Next round", CallbackData: cbStudy}},
		{{Text: "🏠 Main menu", CallbackData: cbMainMenu}},
	})
	return b.send(msg)
}

func (b *Bot) showStats(ctx context.Context, chatID, userID int64) error {
	stats, err := b.study.Stats(ctx, userID, b.now())
	if err != nil {
		_ = b.sendText(chatID, "Could not load statistics. Please try again later.")
		return fmt.Errorf("failed to load stats: %w", err)
	}
	msg := tgbotapi.NewMessage(chatID, formatStats(stats))
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	return b.send(msg)
}

func (b *Bot) showSettings(ctx context.Context, chatID int64, from *tgbotapi.User) error {
	if err := b.ensureUser(ctx, from); err != nil {
		return err
	}
	user, err := b.users.GetByID(ctx, from.ID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	msg := tgbotapi.NewMessage(chatID, formatSettings(user))
	msg.ReplyMarkup = settingsKeyboard(user)
	return b.send(msg)
}

func (b *Bot) toggleNotifications(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if err := b.ensureUser(ctx, callback.From); err != nil {
		b.answerCallback(callback, "")
		return err
	}
	user, err := b.users.GetByID(ctx, callback.From.ID)
	if err != nil {
		b.answerCallback(callback, "")
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := b.users.SetNotification(ctx, user.ID, !user.NotificationEnabled, user.NotificationHour); err != nil {
		b.answerCallback(callback, "")
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	user.NotificationEnabled = !user.NotificationEnabled

	if user.NotificationEnabled {
		b.answerCallback(callback, "Reminders on")
	} else {
		b.answerCallback(callback, "Reminders off")
	}
	msg := tgbotapi.NewMessage(callback.Message.Chat.ID, formatSettings(user))
	msg.ReplyMarkup = settingsKeyboard(user)
	return b.send(msg)
}

func (b *Bot) setNotificationHour(ctx context.Context, chatID int64, from *tgbotapi.User, hour int) error {
	if err := b.ensureUser(ctx, from); err != nil {
		return err
	}
	if err := b.users.SetNotification(ctx, from.ID, true, hour); err != nil {
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	return b.sendText(chatID, fmt.Sprintf("⏰ I will remind you daily at %02d:00.", hour))
}

// handleRemindCommand accepts "/remind off" or "/remind <hour>".
func (b *Bot) handleRemindCommand(ctx context.Context, chatID int64, from *tgbotapi.User, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "When should I remind you?")
		msg.ReplyMarkup = notificationHourKeyboard()
		return b.send(msg)
	}

	if args == "off" {
		if err := b.ensureUser(ctx, from); err != nil {
			return err
		}
		user, err := b.users.GetByID(ctx, from.ID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if err := b.users.SetNotification(ctx, from.ID, false, user.NotificationHour); err != nil {
			return fmt.Errorf("failed to update notifications: %w", err)
		}
		return b.sendText(chatID, "🔕 Reminders are off.")
	}

	hour, err := strconv.Atoi(args)
	if err != nil || hour < 0 || hour > 23 {
		return b.sendText(chatID, "Usage: /remind <hour 0-23> or /remind off")
	}
	return b.setNotificationHour(ctx, chatID, from, hour)
}

func (b *Bot) showHistory(ctx context.Context, chatID, userID int64, key string) error {
	if key == "" {
		return b.sendText(chatID, "Usage: /history <word>")
	}
	if _, err := b.study.Word(ctx, key); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return b.sendText(chatID, fmt.Sprintf("There is no word %q in the pool.", key))
		}
		return fmt.Errorf("failed to load word %q: %w", key, err)
	}

	logs, err := b.study.History(ctx, userID, key)
	if err != nil {
		_ = b.sendText(chatID, "Could not load the history. Please try again later.")
		return err
	}
	return b.sendText(chatID, formatHistory(key, logs, b.now()))
}

func (b *Bot) deleteWord(ctx context.Context, chatID int64, key string) error {
	if key == "" {
		return b.sendText(chatID, "Usage: /delete <word>")
	}
	if err := b.study.DeleteWord(ctx, key); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return b.sendText(chatID, fmt.Sprintf("There is no word %q in the pool.", key))
		}
		_ = b.sendText(chatID, "Could not delete the word. Please try again later.")
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("🗑 %q was removed from the pool.", key))
}

func (b *Bot) checkDue(ctx context.Context, chatID, userID int64) error {
	if b.checker == nil {
		return b.sendText(chatID, "Reminders are disabled.")
	}
	sent, err := b.checker.RunManualCheck(ctx, userID)
	if err != nil {
		_ = b.sendText(chatID, "Could not check your cards. Please try again later.")
		return err
	}
	if !sent {
		return b.sendText(chatID, "Nothing is due right now. 🎉")
	}
	return nil
}

func parseRateData(data string) (models.Rating, int, error) {
	parts := strings.Split(strings.TrimPrefix(data, prefixRate), "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected rating and index, got %q", data)
	}
	rating, err := models.ParseRating(parts[0])
	if err != nil {
		return 0, 0, err
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index: %w", err)
	}
	return rating, idx, nil
}

func wordAt(set spaced_repetition.StudySet, idx int) (string, bool) {
	words := set.Words()
	if idx < 0 || idx >= len(words) {
		return "", false
	}
	return words[idx], true
}

func indexOf(words []string, key string) int {
	for i, w := range words {
		if w == key {
			return i
		}
	}
	return -1
}

func ratingKeyboard(idx int) tgbotapi.InlineKeyboardMarkup {
	suffix := "_" + strconv.Itoa(idx)
	return createKeyboard([][]MenuButton{{
		{Text: "❌ Forgot", CallbackData: prefixRate + models.RatingForgot.String() + suffix},
		{Text: "🙂 Remembered", CallbackData: prefixRate + models.RatingRemembered.String() + suffix},
		{Text: "🌟 Perfect", CallbackData: prefixRate + models.RatingPerfect.String() + suffix},
	}})
}

func settingsKeyboard(user models.User) tgbotapi.InlineKeyboardMarkup {
	toggle := "🔔 Turn reminders on"
	if user.NotificationEnabled {
		toggle = "🔕 Turn reminders off"
	}
	return createKeyboard([][]MenuButton{
		{{Text: toggle, CallbackData: cbNotifyToggle}},
		{{Text: "⏰ Reminder time", CallbackData: cbNotifyTime}},
		{{Text: "🗑 Reset progress", CallbackData: cbReset}},
		{{Text: "🏠 Main menu", CallbackData: cbMainMenu}},
	})
}

func notificationHourKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []MenuButton
	for _, hour := range notificationHours {
		row = append(row, MenuButton{
			Text:         fmt.Sprintf("%02d:00", hour),
			CallbackData: fmt.Sprintf("%s%d", prefixNotifyHour, hour),
		})
	}
	return createKeyboard([][]MenuButton{row})
}

func resetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return createKeyboard([][]MenuButton{{
		{Text: "Yes, reset", CallbackData: cbResetConfirm},
		{Text: "Cancel", CallbackData: cbMainMenu},
	}})
}
