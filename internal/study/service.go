package study

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/recallbot/internal/database"
	"github.com/example/recallbot/internal/spaced_repetition"
	"github.com/example/recallbot/pkg/models"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock_study

var (
	ErrEmptyPool       = errors.New("word pool is empty")
	ErrNoActiveSet     = errors.New("no active study set")
	ErrUnknownWord     = errors.New("word is not in the active study set")
	ErrAlreadyAnswered = errors.New("word already completed in this round")
)

type WordRI interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) (models.Word, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, key string) error
}

type ProgressRI interface {
	Get(ctx context.Context, userID int64, word string) (models.CardState, error)
	GetAll(ctx context.Context, userID int64) (models.ProgressMap, error)
	Save(ctx context.Context, userID int64, card models.CardState) error
	DeleteAll(ctx context.Context, userID int64) error
}

type StudyLogRI interface {
	Add(ctx context.Context, entry models.StudyLog) (models.StudyLog, error)
	ByWord(ctx context.Context, userID int64, word string) ([]models.StudyLog, error)
	Today(ctx context.Context, userID int64, now time.Time, loc *time.Location) ([]models.StudyLog, error)
}

type session struct {
	mu  sync.Mutex
	set spaced_repetition.StudySet
}

// Service runs study rounds for many learners. Each learner has at most one
// active set; answers for the same learner are applied one at a time.
type Service struct {
	words    WordRI
	progress ProgressRI
	logs     StudyLogRI
	model    *spaced_repetition.MemoryModel
	queue    *spaced_repetition.StudyQueue
	loc      *time.Location
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewService(
	words WordRI,
	progress ProgressRI,
	logs StudyLogRI,
	model *spaced_repetition.MemoryModel,
	queue *spaced_repetition.StudyQueue,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		words:    words,
		progress: progress,
		logs:     logs,
		model:    model,
		queue:    queue,
		loc:      loc,
		log:      log,
		sessions: make(map[int64]*session),
	}
}

// StartSet builds a fresh set from the whole pool and makes it the learner's
// active set, replacing any unfinished one.
func (s *Service) StartSet(ctx context.Context, userID int64, now time.Time) (spaced_repetition.StudySet, error) {
	keys, err := s.words.Keys(ctx)
	if err != nil {
		return spaced_repetition.StudySet{}, fmt.Errorf("failed to load word pool: %w", err)
	}
	if len(keys) == 0 {
		return spaced_repetition.StudySet{}, ErrEmptyPool
	}

	progress, err := s.progress.GetAll(ctx, userID)
	if err != nil {
		return spaced_repetition.StudySet{}, fmt.Errorf("failed to load progress: %w", err)
	}

	set := s.queue.CreateSet(keys, progress, now)

	s.mu.Lock()
	s.sessions[userID] = &session{set: set}
	s.mu.Unlock()

	s.log.Debug("study set started",
		zap.Int64("user_id", userID),
		zap.Strings("words", set.Words()),
	)
	return set, nil
}

// Current returns the learner's active set.
func (s *Service) Current(userID int64) (spaced_repetition.StudySet, bool) {
	sess, ok := s.session(userID)
	if !ok {
		return spaced_repetition.StudySet{}, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.set, true
}

// Next returns the word to present to the learner.
func (s *Service) Next(userID int64) (string, bool) {
	set, ok := s.Current(userID)
	if !ok {
		return "", false
	}
	return set.Next()
}

// Answer applies a rating for key in the learner's active set.
//
// The next card state and the advanced set are computed before anything is
// written. If saving the progress or the study log fails, both values are
// still returned and valid for the session, together with the storage error.
func (s *Service) Answer(
	ctx context.Context,
	userID int64,
	key string,
	rating models.Rating,
	timeSpent time.Duration,
	now time.Time,
) (models.CardState, spaced_repetition.StudySet, error) {
	sess, ok := s.session(userID)
	if !ok {
		return models.CardState{}, spaced_repetition.StudySet{}, ErrNoActiveSet
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	set := sess.set
	if !set.Contains(key) {
		return models.CardState{}, set, fmt.Errorf("%w: %q", ErrUnknownWord, key)
	}
	if set.IsCompleted(key) {
		return models.CardState{}, set, fmt.Errorf("%w: %q", ErrAlreadyAnswered, key)
	}

	var prior *models.CardState
	stored, err := s.progress.Get(ctx, userID, key)
	switch {
	case err == nil:
		prior = &stored
	case errors.Is(err, database.ErrNotFound):
	default:
		return models.CardState{}, set, fmt.Errorf("failed to load progress: %w", err)
	}

	next, err := s.model.Transition(key, prior, rating, now, timeSpent.Seconds())
	if err != nil {
		return models.CardState{}, set, err
	}

	set = set.RecordAnswer(key, rating)
	sess.set = set
	if set.IsComplete() {
		s.dropSession(userID, sess)
	}

	priorState := models.StateNew
	if prior != nil {
		priorState = prior.State
	}

	saveErr := s.progress.Save(ctx, userID, next)
	if saveErr != nil {
		s.log.Error("failed to save progress",
			zap.Int64("user_id", userID),
			zap.String("word", key),
			zap.Error(saveErr),
		)
		saveErr = fmt.Errorf("failed to save progress: %w", saveErr)
	}

	_, logErr := s.logs.Add(ctx, models.StudyLog{
		UserID:       userID,
		Word:         key,
		Timestamp:    now.UnixMilli(),
		Rating:       rating,
		TimeSpentSec: timeSpent.Seconds(),
		State:        priorState,
	})
	if logErr != nil {
		s.log.Error("failed to add study log",
			zap.Int64("user_id", userID),
			zap.String("word", key),
			zap.Error(logErr),
		)
		logErr = fmt.Errorf("failed to add study log: %w", logErr)
	}

	return next, set, errors.Join(saveErr, logErr)
}

// Word returns the content of key for presentation.
func (s *Service) Word(ctx context.Context, key string) (models.Word, error) {
	return s.words.Get(ctx, key)
}

// Stats summarizes the learner's progress at now.
func (s *Service) Stats(ctx context.Context, userID int64, now time.Time) (models.UserStats, error) {
	total, err := s.words.Count(ctx)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to count words: %w", err)
	}

	progress, err := s.progress.GetAll(ctx, userID)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to load progress: %w", err)
	}

	stats := models.UserStats{TotalWords: total}
	var sumR float64
	nowMs := now.UnixMilli()
	for _, card := range progress {
		if card.IsNew() {
			continue
		}
		stats.LearnedWords++
		stats.TotalReps += card.Reps
		stats.TotalLapses += card.Lapses
		if card.Due <= nowMs {
			stats.DueNow++
		}
		sumR += spaced_repetition.Retrievability(&card, now)
	}
	if stats.LearnedWords > 0 {
		stats.MeanRetrievability = sumR / float64(stats.LearnedWords)
	}

	today, err := s.logs.Today(ctx, userID, now, s.loc)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to load study log: %w", err)
	}
	stats.ReviewedToday = len(today)
	for _, entry := range today {
		stats.StudyTimeTodaySec += entry.TimeSpentSec
	}

	return stats, nil
}

// History returns the learner's answers for key, oldest first.
func (s *Service) History(ctx context.Context, userID int64, key string) ([]models.StudyLog, error) {
	logs, err := s.logs.ByWord(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return logs, nil
}

// DeleteWord removes key from the pool. Sets already in progress keep it
// until they complete.
func (s *Service) DeleteWord(ctx context.Context, key string) error {
	if err := s.words.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	s.log.Info("word deleted", zap.String("word", key))
	return nil
}

// Reset forgets all of the learner's progress and abandons the active set.
func (s *Service) Reset(ctx context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	if err := s.progress.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	s.log.Info("progress reset", zap.Int64("user_id", userID))
	return nil
}

func (s *Service) session(userID int64) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// dropSession removes sess unless a newer set has already replaced it.
func (s *Service) dropSession(userID int64, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[userID] == sess {
		delete(s.sessions, userID)
	}
}
