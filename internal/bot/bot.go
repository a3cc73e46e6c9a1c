package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/example/recallbot/internal/config"
	"github.com/example/recallbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BotAPI is the part of *tgbotapi.BotAPI the bot talks to.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFileDirectURL(fileID string) (string, error)
}

// maxThinkTime caps the time attributed to one card, so an abandoned
// chat does not inflate study time.
const maxThinkTime = 5 * time.Minute

const defaultNotificationHour = 9

// Bot represents the Telegram bot application.
type Bot struct {
	api      BotAPI
	study    StudySI
	users    UserRI
	importer ImporterI
	checker  ReminderChecker
	cfg      config.BotConfig
	limiter  *rate.Limiter
	http     *http.Client
	now      func() time.Time
	log      *zap.Logger

	mu                 sync.Mutex
	shownAt            map[int64]time.Time
	awaitingFileUpload map[int64]bool
}

// NewBotAPI authorizes against Telegram with the configured token.
func NewBotAPI(cfg config.BotConfig) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// New creates a new bot instance.
func New(api BotAPI, deps Deps, cfg config.BotConfig, log *zap.Logger) *Bot {
	sendRate := cfg.SendRate
	if sendRate <= 0 {
		sendRate = 20
	}
	return &Bot{
		api:                api,
		study:              deps.Study,
		users:              deps.Users,
		importer:           deps.Importer,
		cfg:                cfg,
		limiter:            rate.NewLimiter(rate.Limit(sendRate), 1),
		http:               &http.Client{Timeout: 30 * time.Second},
		now:                time.Now,
		log:                log,
		shownAt:            make(map[int64]time.Time),
		awaitingFileUpload: make(map[int64]bool),
	}
}

// SetReminderChecker enables /due. The scheduler needs the bot as its
// notifier, so it is attached after both exist.
func (b *Bot) SetReminderChecker(c ReminderChecker) {
	b.checker = c
}

// Start handles incoming updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	b.log.Info("bot started")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var err error
	switch {
	case update.Message != nil && update.Message.From != nil:
		err = b.HandleMessage(ctx, update.Message)
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		b.log.Error("failed to handle update", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
}

// SendReminder tells a learner how many cards are waiting. Sends are
// throttled to the configured rate across all reminders.
func (b *Bot) SendReminder(ctx context.Context, userID int64, due int) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	// In Telegram the user ID and the private chat ID are the same.
	msg := tgbotapi.NewMessage(userID, formatReminder(due))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "🎯 Study now", CallbackData: cbStudy}}})

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	b.log.Debug("reminder sent", zap.Int64("user_id", userID), zap.Int("due", due))
	return nil
}

// MenuButton represents a button in the menu.
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons.
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// MainMenuButtons is the keyboard shown under /start and after a round.
func MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "🎯 Study", CallbackData: cbStudy},
			{Text: "📊 Statistics", CallbackData: cbStats},
		},
		{
			{Text: "⚙️ Settings", CallbackData: cbSettings},
		},
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(callback *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, text)); err != nil {
		b.log.Warn("failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) error {
	err := b.users.Upsert(ctx, models.User{
		ID:                  from.ID,
		Username:            from.UserName,
		FirstName:           from.FirstName,
		NotificationEnabled: true,
		NotificationHour:    defaultNotificationHour,
	}, b.now())
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

func (b *Bot) markShown(userID int64, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shownAt[userID] = at
}

func (b *Bot) thinkTime(userID int64, now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	shown, ok := b.shownAt[userID]
	if !ok || now.Before(shown) {
		return 0
	}
	return min(now.Sub(shown), maxThinkTime)
}

func (b *Bot) setAwaitingFile(userID int64, v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v {
		b.awaitingFileUpload[userID] = true
	} else {
		delete(b.awaitingFileUpload, userID)
	}
}

func (b *Bot) isAwaitingFile(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.awaitingFileUpload[userID]
}

var errNotAdmin = errors.New("user is not an admin")
