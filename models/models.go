
package models

// Question represents a single multiple-choice question in the bank.
// Everything except Explanation is immutable after load; Explanation is
// filled in at most once, when it is first fetched, and persisted back.
type Question struct {
	Question       string            `json:"question"`
	Options        map[string]string `json:"options"`
	CorrectOptions []string          `json:"correct_options"`
	Explanation    string            `json:"explanation,omitempty"`
}

// Bank maps a topic name to its questions. Sessions hold the same *Question
// pointers, so caching an explanation on a session's question is visible
// bank-wide before the bank is saved. The "All" topic is synthesized at
// draw time and is never a stored key.
type Bank map[string][]*Question

// Result records the outcome of one answered question.
type Result struct {
	Question       string   `json:"question"`
	UserAnswers    []string `json:"user_answers"`
	CorrectAnswers []string `json:"correct_answers"`
}

// Summary is the exportable end-of-quiz report.
type Summary struct {
	Timestamp      string   `json:"timestamp"` // YYYY-MM-DD_HH-MM-SS
	Topic          string   `json:"topic"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Results        []Result `json:"results"`
}

// TopicInfo describes one selectable topic for the topic list endpoint.
type TopicInfo struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// StartRequest starts a quiz for a topic (a bank key or "All").
type StartRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// ToggleRequest toggles one option key on the current question.
type ToggleRequest struct {
	Key string `json:"key" binding:"required"`
}

// ImportRequest triggers a YAML topic import from a local directory.
type ImportRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// QuestionView is the question as shown while answering: no correct keys,
// no explanation.
type QuestionView struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// Feedback is shown after submitting an answer.
type Feedback struct {
	Correct        bool     `json:"correct"`
	CorrectOptions []string `json:"correct_options"`
	Explanation    string   `json:"explanation,omitempty"`
}

// SessionView is the full renderable session state returned by every
// session endpoint after a transition.
type SessionView struct {
	Phase             string        `json:"phase"`
	Notice            string        `json:"notice,omitempty"`
	Topic             string        `json:"topic,omitempty"`
	Score             int           `json:"score"`
	AnsweredQuestions int           `json:"answered_questions"`
	TotalQuestions    int           `json:"total_questions"`
	QuestionNumber    int           `json:"question_number,omitempty"` // 1-based
	Question          *QuestionView `json:"question,omitempty"`
	Selected          []string      `json:"selected,omitempty"`
	Feedback          *Feedback     `json:"feedback,omitempty"`
	Summary           *Summary      `json:"summary,omitempty"`
}
