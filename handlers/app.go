// --- mcquiz-server/handlers/app.go ---
package handlers

import (
	"fmt"
	"sync"

	"mcquiz-server/explain"
	"mcquiz-server/models"
	"mcquiz-server/quiz"
	"mcquiz-server/store"
	"mcquiz-server/utils"
)

// App bundles the process-wide quiz state shared by all handlers: the one
// session, the loaded bank, and the store and explanation client behind it.
// Every handler takes the mutex for the whole transition, including the
// explanation fetch, so transitions stay atomic and two rapid explanation
// clicks serialize into a single external call.
type App struct {
	mu          sync.Mutex
	session     *quiz.Session
	bank        models.Bank
	store       *store.Store
	explain     *explain.Client
	bankMissing bool
}

// NewApp wires the shared state. bankMissing marks that the questions file
// was absent at startup; the UI shows a notice instead of the app crashing.
func NewApp(session *quiz.Session, bank models.Bank, st *store.Store, ex *explain.Client, bankMissing bool) *App {
	return &App{
		session:     session,
		bank:        bank,
		store:       st,
		explain:     ex,
		bankMissing: bankMissing,
	}
}

// view renders the session into its API representation. Caller holds a.mu.
func (a *App) view() *models.SessionView {
	s := a.session
	v := &models.SessionView{
		Phase:             string(s.Phase()),
		Topic:             s.SelectedTopic,
		Score:             s.Score,
		AnsweredQuestions: s.AnsweredQuestions,
		TotalQuestions:    len(s.Questions),
	}
	if a.bankMissing && len(a.bank) == 0 {
		v.Notice = fmt.Sprintf("%s not found. Please create it with the required questions.", a.store.Path())
	}

	current := s.Current()
	switch s.Phase() {
	case quiz.PhaseAnswering:
		v.QuestionNumber = s.CurrentIndex + 1
		v.Question = &models.QuestionView{Question: current.Question, Options: current.Options}
		v.Selected = s.SelectedKeys()
	case quiz.PhaseFeedback:
		v.QuestionNumber = s.CurrentIndex + 1
		v.Question = &models.QuestionView{Question: current.Question, Options: current.Options}
		v.Selected = s.SelectedKeys()
		// Recompute the verdict from the still-held selection; the session
		// does not store it and the selection cannot change in Feedback.
		v.Feedback = &models.Feedback{
			Correct:        utils.KeySetEqual(s.Selected, current.CorrectOptions),
			CorrectOptions: current.CorrectOptions,
			Explanation:    current.Explanation,
		}
	}
	return v
}
