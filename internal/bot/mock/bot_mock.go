package mock_bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MockBot struct {
	mu            sync.Mutex
	SentMessages  []tgbotapi.Chattable
	Requests      []tgbotapi.Chattable
	FileURL       string
	SendErr       error
	updates       chan tgbotapi.Update
	StoppedUpdate bool
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return tgbotapi.Message{}, m.SendErr
	}
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 123}}, nil
}

func (m *MockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *MockBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updates == nil {
		m.updates = make(chan tgbotapi.Update, 16)
	}
	return m.updates
}

// Push queues an update for the channel returned by GetUpdatesChan.
func (m *MockBot) Push(u tgbotapi.Update) {
	m.GetUpdatesChan(tgbotapi.UpdateConfig{})
	m.mu.Lock()
	updates := m.updates
	m.mu.Unlock()
	updates <- u
}

func (m *MockBot) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StoppedUpdate
}

func (m *MockBot) StopReceivingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoppedUpdate = true
}

func (m *MockBot) GetFileDirectURL(string) (string, error) {
	return m.FileURL, nil
}

// Messages returns the text messages sent so far.
func (m *MockBot) Messages() []tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range m.SentMessages {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

func ClearSentMessages(bot *MockBot) {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	bot.SentMessages = nil
	bot.Requests = nil
}
