package spaced_repetition

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/example/recallbot/pkg/models"
)

// SetSize is the number of words in a study set.
const SetSize = 5

// StudyQueue builds study sets from the word pool.
type StudyQueue struct {
	size int
}

// NewStudyQueue creates a queue producing sets of the given size.
// A non-positive size falls back to SetSize.
func NewStudyQueue(size int) *StudyQueue {
	if size <= 0 {
		size = SetSize
	}
	return &StudyQueue{size: size}
}

// Size returns the batch size of sets built by this queue.
func (q *StudyQueue) Size() int {
	return q.size
}

// CreateSet scores every word, sorts by descending priority (stable, so ties keep
// pool order) and takes the top words as a new set. Repeated keys count once.
func (q *StudyQueue) CreateSet(words []string, progress models.ProgressMap, now time.Time) StudySet {
	type scored struct {
		word  string
		score float64
	}

	ranked := make([]scored, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		var card *models.CardState
		if p, ok := progress[w]; ok {
			card = &p
		}
		ranked = append(ranked, scored{word: w, score: Priority(card, now)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := min(q.size, len(ranked))
	batch := make([]string, n)
	for i := 0; i < n; i++ {
		batch[i] = ranked[i].word
	}

	return NewStudySet(batch)
}

// StudySet is one round of study. Values are immutable: RecordAnswer
// returns a new set and leaves the receiver untouched.
type StudySet struct {
	words     []string
	completed map[string]struct{}
	forgot    map[string]struct{}
}

// NewStudySet creates an in-progress set over the given batch.
// Repeated keys count once.
func NewStudySet(words []string) StudySet {
	batch := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		batch = append(batch, w)
	}
	return StudySet{
		words:     batch,
		completed: make(map[string]struct{}),
		forgot:    make(map[string]struct{}),
	}
}

// Words returns the batch in presentation order.
func (s StudySet) Words() []string {
	return append([]string(nil), s.words...)
}

// Contains reports whether word belongs to the batch.
func (s StudySet) Contains(word string) bool {
	for _, w := range s.words {
		if w == word {
			return true
		}
	}
	return false
}

// Next returns the word to present. Outstanding forgotten words come first,
// in batch order; otherwise the first outstanding word. ok is false once
// every word is completed.
func (s StudySet) Next() (word string, ok bool) {
	first := -1
	for i, w := range s.words {
		if _, done := s.completed[w]; done {
			continue
		}
		if _, missed := s.forgot[w]; missed {
			return w, true
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return "", false
	}
	return s.words[first], true
}

// RecordAnswer returns the set after answering word. A forgot answer keeps the
// word outstanding; remembered and perfect complete it. Words outside the
// batch and invalid ratings leave the set unchanged.
func (s StudySet) RecordAnswer(word string, rating models.Rating) StudySet {
	out := StudySet{
		words:     s.words,
		completed: copySet(s.completed),
		forgot:    copySet(s.forgot),
	}
	if !s.Contains(word) || !rating.IsValid() {
		return out
	}
	if rating == models.RatingForgot {
		out.forgot[word] = struct{}{}
	} else {
		out.completed[word] = struct{}{}
	}
	return out
}

// IsComplete reports whether every word in the batch has been completed.
func (s StudySet) IsComplete() bool {
	return len(s.completed) == len(s.words)
}

// Progress returns completed and total word counts.
func (s StudySet) Progress() (current, total int) {
	return len(s.completed), len(s.words)
}

// HasForgotten reports whether word was answered forgot during this round.
func (s StudySet) HasForgotten(word string) bool {
	_, ok := s.forgot[word]
	return ok
}

// IsCompleted reports whether word is done for this round.
func (s StudySet) IsCompleted(word string) bool {
	_, ok := s.completed[word]
	return ok
}

type studySetJSON struct {
	Words          []string `json:"words"`
	CompletedWords []string `json:"completedWords"`
	ForgotWords    []string `json:"forgotWords"`
}

// MarshalJSON emits the tracking sets in batch order.
func (s StudySet) MarshalJSON() ([]byte, error) {
	j := studySetJSON{
		Words:          s.Words(),
		CompletedWords: []string{},
		ForgotWords:    []string{},
	}
	for _, w := range s.words {
		if s.IsCompleted(w) {
			j.CompletedWords = append(j.CompletedWords, w)
		}
		if s.HasForgotten(w) {
			j.ForgotWords = append(j.ForgotWords, w)
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON restores a set. Tracked words must belong to the batch.
func (s *StudySet) UnmarshalJSON(data []byte) error {
	var j studySetJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	set := NewStudySet(j.Words)
	for _, w := range j.CompletedWords {
		if !set.Contains(w) {
			return fmt.Errorf("study set: completed word %q not in batch", w)
		}
		set.completed[w] = struct{}{}
	}
	for _, w := range j.ForgotWords {
		if !set.Contains(w) {
			return fmt.Errorf("study set: forgotten word %q not in batch", w)
		}
		set.forgot[w] = struct{}{}
	}
	*s = set
	return nil
}

func copySet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m)+1)
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
