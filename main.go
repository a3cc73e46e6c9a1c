package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/recallbot/internal/bot"
	"github.com/example/recallbot/internal/config"
	"github.com/example/recallbot/internal/database"
	"github.com/example/recallbot/internal/excel"
	"github.com/example/recallbot/internal/scheduler"
	"github.com/example/recallbot/internal/spaced_repetition"
	"github.com/example/recallbot/internal/study"
	"go.uber.org/zap"
)

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal("failed load config " + err.Error())
	}

	logger := setupLogger(cfg.Env)
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.Study.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := database.NewRepository(db)

	model := spaced_repetition.NewMemoryModel(spaced_repetition.MemoryModelConfig{
		DesiredRetention: cfg.Study.DesiredRetention,
		MaximumInterval:  cfg.Study.MaximumInterval,
	})
	queue := spaced_repetition.NewStudyQueue(cfg.Study.SetSize)
	studyService := study.NewService(repo.Words, repo.Progress, repo.Logs, model, queue, loc, logger.Named("study"))
	importer := excel.NewImporter(repo.Words, logger.Named("import"))

	api, err := bot.NewBotAPI(cfg.Bot)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}
	logger.Info("authorized", zap.String("account", api.Self.UserName))

	b := bot.New(api, bot.Deps{
		Study:    studyService,
		Users:    repo.Users,
		Importer: importer,
	}, cfg.Bot, logger.Named("bot"))

	reminders := scheduler.New(repo.Users, repo.Progress, b, cfg.Reminders, loc, logger.Named("scheduler"))
	b.SetReminderChecker(reminders)
	if err := reminders.Start(); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer reminders.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot started, press Ctrl+C to stop")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped with error", zap.Error(err))
		return
	}
	logger.Info("bot stopped")
}
