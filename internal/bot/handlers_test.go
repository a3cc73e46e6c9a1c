package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mock_bot "github.com/example/recallbot/internal/bot/mock"
	"github.com/example/recallbot/internal/config"
	"github.com/example/recallbot/internal/database"
	"github.com/example/recallbot/internal/excel"
	"github.com/example/recallbot/internal/spaced_repetition"
	"github.com/example/recallbot/internal/study"
	"github.com/example/recallbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testChatID  int64 = 123
	testUserID  int64 = 456
	testAdminID int64 = 789
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type mocks struct {
	study    *mock_bot.MockStudySI
	users    *mock_bot.MockUserRI
	importer *mock_bot.MockImporterI
	api      *mock_bot.MockBot
}

func newTestBot(t *testing.T, ctrl *gomock.Controller, setup func(m mocks)) (*Bot, mocks) {
	t.Helper()
	m := mocks{
		study:    mock_bot.NewMockStudySI(ctrl),
		users:    mock_bot.NewMockUserRI(ctrl),
		importer: mock_bot.NewMockImporterI(ctrl),
		api:      &mock_bot.MockBot{},
	}
	if setup != nil {
		setup(m)
	}

	b := New(m.api, Deps{Study: m.study, Users: m.users, Importer: m.importer}, config.BotConfig{
		Token:    "test",
		AdminIDs: []int64{testAdminID},
		SendRate: 30,
	}, zap.NewNop())
	b.now = func() time.Time { return testNow }
	return b, m
}

func command(text string, from int64) *tgbotapi.Message {
	cmd := strings.SplitN(text, " ", 2)[0]
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: from, UserName: "learner", FirstName: "Ann"},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(cmd)},
		},
	}
}

func callback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		From:    &tgbotapi.User{ID: testUserID, UserName: "learner", FirstName: "Ann"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}},
	}
}

func expectUser(m mocks) {
	m.users.EXPECT().Upsert(gomock.Any(), gomock.Any(), testNow).Return(nil).AnyTimes()
}

func lastMessage(t *testing.T, api *mock_bot.MockBot) tgbotapi.MessageConfig {
	t.Helper()
	msgs := api.Messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func keyboardOf(t *testing.T, msg tgbotapi.MessageConfig) tgbotapi.InlineKeyboardMarkup {
	t.Helper()
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	return kb
}

func callbackTexts(api *mock_bot.MockBot) []string {
	var out []string
	for _, r := range api.Requests {
		if cb, ok := r.(tgbotapi.CallbackConfig); ok && cb.Text != "" {
			out = append(out, cb.Text)
		}
	}
	return out
}

func TestBot_StartCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		f          func(m mocks)
		assertFunc func(*testing.T, *mock_bot.MockBot)
		wantErr    bool
	}{
		{
			name: "success: registers and greets",
			f: func(m mocks) {
				m.users.EXPECT().Upsert(gomock.Any(), models.User{
					ID:                  testUserID,
					Username:            "learner",
					FirstName:           "Ann",
					NotificationEnabled: true,
					NotificationHour:    9,
				}, testNow).Return(nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				msg := lastMessage(t, api)
				assert.Contains(t, msg.Text, "Hi, Ann!")
				kb := keyboardOf(t, msg)
				require.Len(t, kb.InlineKeyboard, 2)
				assert.Equal(t, cbStudy, *kb.InlineKeyboard[0][0].CallbackData)
				assert.Equal(t, cbStats, *kb.InlineKeyboard[0][1].CallbackData)
			},
		},
		{
			name: "error: registration fails",
			f: func(m mocks) {
				m.users.EXPECT().Upsert(gomock.Any(), gomock.Any(), testNow).Return(errors.New("db down"))
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Empty(t, api.SentMessages)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			err := b.HandleMessage(context.Background(), command("/start", testUserID))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.assertFunc(t, m.api)
		})
	}
}

func TestBot_StartStudy(t *testing.T) {
	t.Parallel()

	apple := models.Word{Word: "apple", Meaning: "a fruit", Pronunciation: "/ˈæp.əl/"}

	tests := []struct {
		name       string
		f          func(m mocks)
		assertFunc func(*testing.T, *mock_bot.MockBot)
		wantErr    bool
	}{
		{
			name: "success: shows the first card front",
			f: func(m mocks) {
				expectUser(m)
				m.study.EXPECT().StartSet(gomock.Any(), testUserID, testNow).
					Return(spaced_repetition.NewStudySet([]string{"apple", "pear"}), nil)
				m.study.EXPECT().Word(gomock.Any(), "apple").Return(apple, nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				msg := lastMessage(t, api)
				assert.Equal(t, "1/2\n\n📖 apple\n/ˈæp.əl/", msg.Text)
				assert.NotContains(t, msg.Text, "a fruit")
				kb := keyboardOf(t, msg)
				assert.Equal(t, "reveal_0", *kb.InlineKeyboard[0][0].CallbackData)
			},
		},
		{
			name: "empty pool: explains how to add words",
			f: func(m mocks) {
				expectUser(m)
				m.study.EXPECT().StartSet(gomock.Any(), testUserID, testNow).
					Return(spaced_repetition.StudySet{}, study.ErrEmptyPool)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "/import")
			},
		},
		{
			name: "error: storage failure",
			f: func(m mocks) {
				expectUser(m)
				m.study.EXPECT().StartSet(gomock.Any(), testUserID, testNow).
					Return(spaced_repetition.StudySet{}, errors.New("db down"))
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "try again")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			err := b.HandleCallback(context.Background(), callback(cbStudy))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.assertFunc(t, m.api)
		})
	}
}

func TestBot_RevealCard(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	set := spaced_repetition.NewStudySet([]string{"apple", "pear"})
	b, m := newTestBot(t, ctrl, func(m mocks) {
		m.study.EXPECT().Current(testUserID).Return(set, true)
		m.study.EXPECT().Word(gomock.Any(), "pear").Return(models.Word{
			Word:        "pear",
			Meaning:     "another fruit",
			Example:     "A ripe pear.",
			Translation: "груша",
		}, nil)
	})

	require.NoError(t, b.HandleCallback(context.Background(), callback("reveal_1")))

	msg := lastMessage(t, m.api)
	assert.Equal(t, "📖 pear\n\n💡 another fruit\n\n✏️ A ripe pear.\nгруша", msg.Text)
	kb := keyboardOf(t, msg)
	require.Len(t, kb.InlineKeyboard[0], 3)
	assert.Equal(t, "rate_forgot_1", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "rate_remembered_1", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "rate_perfect_1", *kb.InlineKeyboard[0][2].CallbackData)
}

func TestBot_RevealWithoutRound(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, m := newTestBot(t, ctrl, func(m mocks) {
		m.study.EXPECT().Current(testUserID).Return(spaced_repetition.StudySet{}, false)
	})

	require.NoError(t, b.HandleCallback(context.Background(), callback("reveal_0")))
	assert.Equal(t, roundOverText, lastMessage(t, m.api).Text)
}

func TestBot_RateCard(t *testing.T) {
	t.Parallel()

	set := spaced_repetition.NewStudySet([]string{"apple", "pear"})
	due := testNow.Add(3 * 24 * time.Hour).UnixMilli()

	tests := []struct {
		name       string
		data       string
		f          func(m mocks)
		assertFunc func(*testing.T, *mock_bot.MockBot)
		wantErr    bool
	}{
		{
			name: "remembered: schedules and moves on",
			data: "rate_remembered_0",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingRemembered, gomock.Any(), testNow).
					Return(models.CardState{Word: "apple", Due: due}, set.RecordAnswer("apple", models.RatingRemembered), nil)
				m.study.EXPECT().Word(gomock.Any(), "pear").Return(models.Word{Word: "pear"}, nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Equal(t, []string{"Next review in 3 days"}, callbackTexts(api))
				assert.Equal(t, "2/2\n\n📖 pear", lastMessage(t, api).Text)
			},
		},
		{
			name: "forgot: the word comes back first with a retry marker",
			data: "rate_forgot_1",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "pear", models.RatingForgot, gomock.Any(), testNow).
					Return(models.CardState{Word: "pear", Due: testNow.UnixMilli()}, set.RecordAnswer("pear", models.RatingForgot), nil)
				m.study.EXPECT().Word(gomock.Any(), "pear").Return(models.Word{Word: "pear"}, nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Equal(t, "1/2 🔁\n\n📖 pear", lastMessage(t, api).Text)
			},
		},
		{
			name: "last word: finishes the round with stats",
			data: "rate_perfect_0",
			f: func(m mocks) {
				oneWord := spaced_repetition.NewStudySet([]string{"apple"})
				m.study.EXPECT().Current(testUserID).Return(oneWord, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingPerfect, gomock.Any(), testNow).
					Return(models.CardState{Word: "apple", Due: due}, oneWord.RecordAnswer("apple", models.RatingPerfect), nil)
				m.study.EXPECT().Stats(gomock.Any(), testUserID, testNow).
					Return(models.UserStats{TotalWords: 1, LearnedWords: 1, ReviewedToday: 1}, nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				msg := lastMessage(t, api)
				assert.True(t, strings.HasPrefix(msg.Text, "🎉 Round complete!"))
				assert.Contains(t, msg.Text, "Words learned: 1/1")
				kb := keyboardOf(t, msg)
				assert.Equal(t, cbStudy, *kb.InlineKeyboard[0][0].CallbackData)
			},
		},
		{
			name: "storage failure after scheduling: the round continues",
			data: "rate_remembered_0",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingRemembered, gomock.Any(), testNow).
					Return(models.CardState{Word: "apple", Due: due}, set.RecordAnswer("apple", models.RatingRemembered), errors.New("disk full"))
				m.study.EXPECT().Word(gomock.Any(), "pear").Return(models.Word{Word: "pear"}, nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Equal(t, "2/2\n\n📖 pear", lastMessage(t, api).Text)
			},
		},
		{
			name: "already answered: only a toast",
			data: "rate_perfect_0",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingPerfect, gomock.Any(), testNow).
					Return(models.CardState{}, set, study.ErrAlreadyAnswered)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Empty(t, api.SentMessages)
				assert.Equal(t, []string{"Already answered"}, callbackTexts(api))
			},
		},
		{
			name: "round closed meanwhile",
			data: "rate_perfect_0",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingPerfect, gomock.Any(), testNow).
					Return(models.CardState{}, spaced_repetition.StudySet{}, study.ErrNoActiveSet)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Equal(t, roundOverText, lastMessage(t, api).Text)
			},
		},
		{
			name: "error: progress could not be loaded",
			data: "rate_perfect_0",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
				m.study.EXPECT().Answer(gomock.Any(), testUserID, "apple", models.RatingPerfect, gomock.Any(), testNow).
					Return(models.CardState{}, set, errors.New("db down"))
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "Could not record")
			},
			wantErr: true,
		},
		{
			name: "index outside the batch is ignored",
			data: "rate_perfect_7",
			f: func(m mocks) {
				m.study.EXPECT().Current(testUserID).Return(set, true)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Empty(t, api.SentMessages)
			},
		},
		{
			name: "malformed data is ignored",
			data: "rate_meh_0",
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Empty(t, api.SentMessages)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			err := b.HandleCallback(context.Background(), callback(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.assertFunc(t, m.api)
		})
	}
}

func TestBot_ThinkTimeIsCapped(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, _ := newTestBot(t, ctrl, nil)

	assert.Zero(t, b.thinkTime(testUserID, testNow))

	b.markShown(testUserID, testNow.Add(-20*time.Second))
	assert.Equal(t, 20*time.Second, b.thinkTime(testUserID, testNow))

	b.markShown(testUserID, testNow.Add(-time.Hour))
	assert.Equal(t, maxThinkTime, b.thinkTime(testUserID, testNow))
}

func TestBot_Settings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		msg        *tgbotapi.Message
		data       string
		f          func(m mocks)
		assertFunc func(*testing.T, *mock_bot.MockBot)
	}{
		{
			name: "toggle turns reminders off",
			data: cbNotifyToggle,
			f: func(m mocks) {
				expectUser(m)
				m.users.EXPECT().GetByID(gomock.Any(), testUserID).
					Return(models.User{ID: testUserID, NotificationEnabled: true, NotificationHour: 18}, nil)
				m.users.EXPECT().SetNotification(gomock.Any(), testUserID, false, 18).Return(nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Equal(t, []string{"Reminders off"}, callbackTexts(api))
				assert.Equal(t, "⚙️ Settings\n\nDaily reminder: off", lastMessage(t, api).Text)
			},
		},
		{
			name: "hour button enables reminders",
			data: "set_notification_time_18",
			f: func(m mocks) {
				expectUser(m)
				m.users.EXPECT().SetNotification(gomock.Any(), testUserID, true, 18).Return(nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "18:00")
			},
		},
		{
			name: "hour out of range",
			data: "set_notification_time_42",
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Empty(t, api.SentMessages)
				assert.Equal(t, []string{"Invalid hour"}, callbackTexts(api))
			},
		},
		{
			name: "time picker offers the fixed hours",
			data: cbNotifyTime,
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				kb := keyboardOf(t, lastMessage(t, api))
				require.Len(t, kb.InlineKeyboard[0], len(notificationHours))
				assert.Equal(t, "09:00", kb.InlineKeyboard[0][0].Text)
				assert.Equal(t, "set_notification_time_21", *kb.InlineKeyboard[0][4].CallbackData)
			},
		},
		{
			name: "remind command with an hour",
			msg:  command("/remind 7", testUserID),
			f: func(m mocks) {
				expectUser(m)
				m.users.EXPECT().SetNotification(gomock.Any(), testUserID, true, 7).Return(nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "07:00")
			},
		},
		{
			name: "remind off keeps the hour",
			msg:  command("/remind off", testUserID),
			f: func(m mocks) {
				expectUser(m)
				m.users.EXPECT().GetByID(gomock.Any(), testUserID).
					Return(models.User{ID: testUserID, NotificationEnabled: true, NotificationHour: 12}, nil)
				m.users.EXPECT().SetNotification(gomock.Any(), testUserID, false, 12).Return(nil)
			},
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.Contains(t, lastMessage(t, api).Text, "off")
			},
		},
		{
			name: "remind with garbage shows usage",
			msg:  command("/remind 25", testUserID),
			assertFunc: func(t *testing.T, api *mock_bot.MockBot) {
				assert.True(t, strings.HasPrefix(lastMessage(t, api).Text, "Usage"))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			var err error
			if tt.msg != nil {
				err = b.HandleMessage(context.Background(), tt.msg)
			} else {
				err = b.HandleCallback(context.Background(), callback(tt.data))
			}
			require.NoError(t, err)
			tt.assertFunc(t, m.api)
		})
	}
}

func TestBot_ResetProgress(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, m := newTestBot(t, ctrl, func(m mocks) {
		m.study.EXPECT().Reset(gomock.Any(), testUserID).Return(nil)
	})

	require.NoError(t, b.HandleMessage(context.Background(), command("/reset", testUserID)))
	kb := keyboardOf(t, lastMessage(t, m.api))
	assert.Equal(t, cbResetConfirm, *kb.InlineKeyboard[0][0].CallbackData)

	require.NoError(t, b.HandleCallback(context.Background(), callback(cbResetConfirm)))
	assert.Equal(t, "Your progress has been reset.", lastMessage(t, m.api).Text)
}

func TestBot_ImportDocument(t *testing.T) {
	t.Parallel()

	const csvBody = "word,meaning\napple,a fruit\npear,another fruit\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(csvBody))
	}))
	t.Cleanup(srv.Close)

	document := func(from int64, name string) *tgbotapi.Message {
		return &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: testChatID},
			From:     &tgbotapi.User{ID: from},
			Document: &tgbotapi.Document{FileID: "file-1", FileName: name, FileSize: len(csvBody)},
		}
	}

	t.Run("admin upload is imported", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var importedPath string
		b, m := newTestBot(t, ctrl, func(m mocks) {
			m.importer.EXPECT().ImportWords(gomock.Any(), gomock.Any(), testNow).
				DoAndReturn(func(_ context.Context, cfg excel.ImportConfig, _ time.Time) (*excel.ImportResult, error) {
					importedPath = cfg.FilePath
					assert.Equal(t, ".csv", filepath.Ext(cfg.FilePath))
					data, err := os.ReadFile(cfg.FilePath)
					require.NoError(t, err)
					assert.Equal(t, csvBody, string(data))
					return &excel.ImportResult{TotalProcessed: 2, Created: 2}, nil
				})
		})
		m.api.FileURL = srv.URL

		require.NoError(t, b.HandleMessage(context.Background(), command("/import", testAdminID)))
		assert.Equal(t, importInstructions, lastMessage(t, m.api).Text)

		require.NoError(t, b.HandleMessage(context.Background(), document(testAdminID, "Words.CSV")))
		assert.Contains(t, lastMessage(t, m.api).Text, "Created: 2")

		_, err := os.Stat(importedPath)
		assert.True(t, os.IsNotExist(err), "temp file should be removed")
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b, m := newTestBot(t, ctrl, nil)
		require.NoError(t, b.HandleMessage(context.Background(), command("/import", testUserID)))
		require.NoError(t, b.HandleMessage(context.Background(), document(testUserID, "words.csv")))
		for _, msg := range m.api.Messages() {
			assert.Equal(t, "Only administrators can import words.", msg.Text)
		}
	})

	t.Run("document without import command", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b, m := newTestBot(t, ctrl, nil)
		require.NoError(t, b.HandleMessage(context.Background(), document(testAdminID, "words.csv")))
		assert.Contains(t, lastMessage(t, m.api).Text, "/import first")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b, m := newTestBot(t, ctrl, nil)
		require.NoError(t, b.HandleMessage(context.Background(), command("/import", testAdminID)))
		require.NoError(t, b.HandleMessage(context.Background(), document(testAdminID, "words.txt")))
		assert.Contains(t, lastMessage(t, m.api).Text, "Unsupported file type")
	})

	t.Run("import failure is reported", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b, m := newTestBot(t, ctrl, func(m mocks) {
			m.importer.EXPECT().ImportWords(gomock.Any(), gomock.Any(), testNow).
				Return(nil, errors.New("no sheets"))
		})
		m.api.FileURL = srv.URL

		require.NoError(t, b.HandleMessage(context.Background(), command("/import", testAdminID)))
		err := b.HandleMessage(context.Background(), document(testAdminID, "words.csv"))
		assert.Error(t, err)
		assert.Contains(t, lastMessage(t, m.api).Text, "Import failed")
	})
}

func TestBot_SendReminder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, m := newTestBot(t, ctrl, nil)

	require.NoError(t, b.SendReminder(context.Background(), testUserID, 3))
	msg := lastMessage(t, m.api)
	assert.Equal(t, testUserID, msg.ChatID)
	assert.Equal(t, "⏰ 3 words are waiting for review.", msg.Text)
	assert.Equal(t, cbStudy, *keyboardOf(t, msg).InlineKeyboard[0][0].CallbackData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.SendReminder(ctx, testUserID, 1), context.Canceled)

	m.api.SendErr = errors.New("blocked by user")
	assert.Error(t, b.SendReminder(context.Background(), testUserID, 1))
}

func TestBot_Start(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, m := newTestBot(t, ctrl, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	m.api.Push(tgbotapi.Update{UpdateID: 1, Message: command("/help", testUserID)})
	require.Eventually(t, func() bool { return len(m.api.Messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Contains(t, m.api.Messages()[0].Text, "/study")
	assert.NotContains(t, m.api.Messages()[0].Text, "/import")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
	assert.True(t, m.api.Stopped())
}

type stubChecker struct {
	sent bool
	err  error
}

func (s stubChecker) RunManualCheck(context.Context, int64) (bool, error) {
	return s.sent, s.err
}

func TestBot_DueCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		checker  ReminderChecker
		wantText string
		wantErr  bool
	}{
		{name: "reminders disabled", wantText: "Reminders are disabled."},
		{name: "nothing due", checker: stubChecker{}, wantText: "Nothing is due right now. 🎉"},
		{name: "check failed", checker: stubChecker{err: errors.New("db down")}, wantText: "Could not check your cards. Please try again later.", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, nil)
			if tt.checker != nil {
				b.SetReminderChecker(tt.checker)
			}
			err := b.HandleMessage(context.Background(), command("/due", testUserID))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantText, lastMessage(t, m.api).Text)
		})
	}

	t.Run("reminder sent", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b, m := newTestBot(t, ctrl, nil)
		b.SetReminderChecker(stubChecker{sent: true})
		require.NoError(t, b.HandleMessage(context.Background(), command("/due", testUserID)))
		assert.Empty(t, m.api.SentMessages)
	})
}

func TestBot_HistoryCommand(t *testing.T) {
	t.Parallel()

	entries := []models.StudyLog{
		{Word: "apple", Timestamp: testNow.Add(-48 * time.Hour).UnixMilli(), Rating: models.RatingForgot, State: models.StateNew},
		{Word: "apple", Timestamp: testNow.Add(-10 * time.Minute).UnixMilli(), Rating: models.RatingPerfect, State: models.StateLearning},
	}

	tests := []struct {
		name     string
		text     string
		f        func(m mocks)
		wantText string
		wantErr  bool
	}{
		{
			name: "success: lists answers",
			text: "/history apple",
			f: func(m mocks) {
				m.study.EXPECT().Word(gomock.Any(), "apple").Return(models.Word{Word: "apple"}, nil)
				m.study.EXPECT().History(gomock.Any(), testUserID, "apple").Return(entries, nil)
			},
			wantText: "📜 apple (2 answers)\n\n❌ 2 days ago (was New)\n🌟 10 min ago (was Learning)",
		},
		{
			name: "no answers yet",
			text: "/history pear",
			f: func(m mocks) {
				m.study.EXPECT().Word(gomock.Any(), "pear").Return(models.Word{Word: "pear"}, nil)
				m.study.EXPECT().History(gomock.Any(), testUserID, "pear").Return([]models.StudyLog{}, nil)
			},
			wantText: "📜 pear\n\nNo answers yet.",
		},
		{
			name: "unknown word",
			text: "/history durian",
			f: func(m mocks) {
				m.study.EXPECT().Word(gomock.Any(), "durian").Return(models.Word{}, fmt.Errorf("get word: %w", database.ErrNotFound))
			},
			wantText: `There is no word "durian" in the pool.`,
		},
		{
			name:     "missing argument",
			text:     "/history",
			wantText: "Usage: /history <word>",
		},
		{
			name: "error: history fails",
			text: "/history apple",
			f: func(m mocks) {
				m.study.EXPECT().Word(gomock.Any(), "apple").Return(models.Word{Word: "apple"}, nil)
				m.study.EXPECT().History(gomock.Any(), testUserID, "apple").Return(nil, database.ErrStorage)
			},
			wantText: "Could not load the history. Please try again later.",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			err := b.HandleMessage(context.Background(), command(tt.text, testUserID))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantText, lastMessage(t, m.api).Text)
		})
	}
}

func TestBot_DeleteCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     int64
		text     string
		f        func(m mocks)
		wantText string
	}{
		{
			name: "admin removes a word",
			from: testAdminID,
			text: "/delete apple",
			f: func(m mocks) {
				m.study.EXPECT().DeleteWord(gomock.Any(), "apple").Return(nil)
			},
			wantText: `🗑 "apple" was removed from the pool.`,
		},
		{
			name: "unknown word",
			from: testAdminID,
			text: "/delete durian",
			f: func(m mocks) {
				m.study.EXPECT().DeleteWord(gomock.Any(), "durian").Return(fmt.Errorf("delete word: %w", database.ErrNotFound))
			},
			wantText: `There is no word "durian" in the pool.`,
		},
		{
			name:     "non-admin is refused",
			from:     testUserID,
			text:     "/delete apple",
			wantText: "Only administrators can delete words.",
		},
		{
			name:     "missing argument",
			from:     testAdminID,
			text:     "/delete",
			wantText: "Usage: /delete <word>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, m := newTestBot(t, ctrl, tt.f)
			require.NoError(t, b.HandleMessage(context.Background(), command(tt.text, tt.from)))
			assert.Equal(t, tt.wantText, lastMessage(t, m.api).Text)
		})
	}
}
