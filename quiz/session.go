
package quiz

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"mcquiz-server/models"
	"mcquiz-server/utils"
)

// Phase is the observable state of a quiz session.
type Phase string

const (
	PhaseTopicSelection Phase = "topic_selection"
	PhaseAnswering      Phase = "answering"
	PhaseFeedback       Phase = "feedback"
	PhaseComplete       Phase = "complete"
)

// FetchFunc produces explanation text for a question. It is total: degraded
// or error output is returned as display text, never as an error.
type FetchFunc func(ctx context.Context, q *models.Question) string

// Saver persists the whole question bank. Implemented by *store.Store.
type Saver interface {
	Save(bank models.Bank) error
}

// Session is the mutable state of one quiz run. It is exclusively owned by
// one interactive run; callers serialize access (the HTTP layer holds a
// mutex across every transition).
type Session struct {
	SelectedTopic     string
	Questions         []*models.Question
	CurrentIndex      int
	Score             int
	AnsweredQuestions int
	Answered          bool
	Selected          map[string]bool
	Results           []models.Result

	// UsedQuestions tracks the text of questions already answered. Nothing
	// reads it yet; kept for future cross-session duplicate avoidance.
	UsedQuestions map[string]bool

	rng *rand.Rand
}

// NewSession creates a session in the TopicSelection phase. A nil rng gets a
// time-seeded one; tests pass a fixed seed for reproducible shuffles.
func NewSession(rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		Selected:      make(map[string]bool),
		UsedQuestions: make(map[string]bool),
		rng:           rng,
	}
}

// Phase derives the current phase; Complete is CurrentIndex == len(Questions),
// not a stored flag.
func (s *Session) Phase() Phase {
	switch {
	case s.SelectedTopic == "":
		return PhaseTopicSelection
	case s.CurrentIndex >= len(s.Questions):
		return PhaseComplete
	case s.Answered:
		return PhaseFeedback
	default:
		return PhaseAnswering
	}
}

// Current returns the question at CurrentIndex, or nil when complete.
func (s *Session) Current() *models.Question {
	if s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// Start draws a freshly shuffled question sequence for the topic and enters
// the Answering phase. Valid only during topic selection.
func (s *Session) Start(bank models.Bank, topic string) error {
	if s.Phase() != PhaseTopicSelection {
		return fmt.Errorf("cannot start quiz: session is in %s phase", s.Phase())
	}
	s.SelectedTopic = topic
	s.Questions = QuestionsFor(bank, topic, s.rng)
	s.CurrentIndex = 0
	s.Score = 0
	s.AnsweredQuestions = 0
	s.Answered = false
	s.Selected = make(map[string]bool)
	s.Results = nil
	return nil
}

// Toggle adds key to the answer selection if absent, removes it if present.
// A key that does not exist on the current question is silently ignored; the
// presentation layer only offers valid keys, so this is not worth failing
// the session over.
func (s *Session) Toggle(key string) error {
	if s.Phase() != PhaseAnswering {
		return fmt.Errorf("cannot toggle option: session is in %s phase", s.Phase())
	}
	current := s.Current()
	if _, ok := current.Options[key]; !ok {
		return nil
	}
	if s.Selected[key] {
		delete(s.Selected, key)
	} else {
		s.Selected[key] = true
	}
	return nil
}

// Submit scores the current selection with exact set equality (no partial
// credit) and enters the Feedback phase. Returns whether it was correct.
func (s *Session) Submit() (bool, error) {
	if s.Phase() != PhaseAnswering {
		return false, fmt.Errorf("cannot submit answer: session is in %s phase", s.Phase())
	}
	correct := utils.KeySetEqual(s.Selected, s.Current().CorrectOptions)
	if correct {
		s.Score++
	}
	s.Answered = true
	return correct, nil
}

// Explanation returns the cached explanation for the current question, or
// fetches one, caches it on the shared Question and persists the whole bank.
// Whatever text the fetcher returns is cached, including degraded or error
// text; a failed save is logged but never surfaced, the text is still shown.
func (s *Session) Explanation(ctx context.Context, fetch FetchFunc, bank models.Bank, saver Saver) (string, error) {
	if s.Phase() != PhaseFeedback {
		return "", fmt.Errorf("cannot fetch explanation: session is in %s phase", s.Phase())
	}
	current := s.Current()
	if current.Explanation != "" {
		return current.Explanation, nil
	}
	current.Explanation = fetch(ctx, current)
	if err := saver.Save(bank); err != nil {
		log.Printf("Error saving explanation to question bank: %v", err)
	}
	return current.Explanation, nil
}

// Next records the current question's outcome, clears the selection and
// advances. When the last question is consumed the session is observably in
// the Complete phase.
func (s *Session) Next() error {
	if s.Phase() != PhaseFeedback {
		return fmt.Errorf("cannot advance: session is in %s phase", s.Phase())
	}
	current := s.Current()

	var userAnswers []string
	var correctAnswers []string
	for _, key := range utils.SortedKeys(current.Options) {
		if s.Selected[key] {
			userAnswers = append(userAnswers, current.Options[key])
		}
		if utils.ContainsString(current.CorrectOptions, key) {
			correctAnswers = append(correctAnswers, current.Options[key])
		}
	}
	s.Results = append(s.Results, models.Result{
		Question:       current.Question,
		UserAnswers:    userAnswers,
		CorrectAnswers: correctAnswers,
	})
	s.UsedQuestions[current.Question] = true

	s.CurrentIndex++
	s.AnsweredQuestions++
	s.Selected = make(map[string]bool)
	s.Answered = false
	return nil
}

// Reset returns the session to topic selection from any state.
func (s *Session) Reset() {
	s.SelectedTopic = ""
	s.Questions = nil
	s.CurrentIndex = 0
	s.Score = 0
	s.AnsweredQuestions = 0
	s.Answered = false
	s.Selected = make(map[string]bool)
	s.Results = nil
	s.UsedQuestions = make(map[string]bool)
}

// SelectedKeys returns the current selection in sorted order.
func (s *Session) SelectedKeys() []string {
	keys := make([]string, 0, len(s.Selected))
	for k := range s.Selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary assembles the end-of-quiz export. Valid only once complete.
func (s *Session) Summary() (*models.Summary, error) {
	if s.Phase() != PhaseComplete {
		return nil, fmt.Errorf("cannot build summary: session is in %s phase", s.Phase())
	}
	return &models.Summary{
		Timestamp:      utils.Timestamp(time.Now()),
		Topic:          s.SelectedTopic,
		Score:          s.Score,
		TotalQuestions: len(s.Questions),
		Results:        s.Results,
	}, nil
}
