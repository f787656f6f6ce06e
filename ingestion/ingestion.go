// --- mcquiz-server/ingestion/ingestion.go ---
package ingestion

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mcquiz-server/models"
)

// topicFile is the YAML authoring format: one file per topic.
//
//	topic: math
//	questions:
//	  - question: "2+2?"
//	    options: {A: "3", B: "4"}
//	    correct_options: [B]
type topicFile struct {
	Topic     string         `yaml:"topic"`
	Questions []questionYAML `yaml:"questions"`
}

type questionYAML struct {
	Question       string            `yaml:"question"`
	Options        map[string]string `yaml:"options"`
	CorrectOptions []string          `yaml:"correct_options"`
	Explanation    string            `yaml:"explanation"`
}

// ImportError records one rejected file or question; valid questions from
// the same file still land.
type ImportError struct {
	File    string `json:"file"`
	Index   int    `json:"index"` // 0-based question index, -1 for file-level errors
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Report summarizes an import run.
type Report struct {
	TopicsImported    int           `json:"topics_imported"`
	QuestionsImported int           `json:"questions_imported"`
	Errors            []ImportError `json:"errors,omitempty"`
}

// ImportDir reads every .yaml/.yml topic file in dir, validates the
// questions and merges them into bank, replacing each imported topic
// wholesale. The bank is modified in place; the caller persists it.
func ImportDir(dir string, bank models.Bank) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read import directory %s: %w", dir, err)
	}

	report := &Report{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		importFile(path, bank, report)
	}
	log.Printf("Import of %s finished: %d topics, %d questions, %d errors",
		dir, report.TopicsImported, report.QuestionsImported, len(report.Errors))
	return report, nil
}

func importFile(path string, bank models.Bank, report *Report) {
	data, err := os.ReadFile(path)
	if err != nil {
		report.Errors = append(report.Errors, ImportError{
			File: path, Index: -1,
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
		return
	}

	var tf topicFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		report.Errors = append(report.Errors, ImportError{
			File: path, Index: -1,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
		})
		return
	}

	topic := tf.Topic
	if topic == "" {
		// Topic defaults to the file name, matching the one-file-per-topic layout.
		topic = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var questions []*models.Question
	for i, qy := range tf.Questions {
		if err := validateQuestion(qy); err != nil {
			report.Errors = append(report.Errors, ImportError{
				File: path, Index: i, Field: errField(err), Message: err.Error(),
			})
			continue
		}
		questions = append(questions, &models.Question{
			Question:       qy.Question,
			Options:        qy.Options,
			CorrectOptions: qy.CorrectOptions,
			Explanation:    qy.Explanation,
		})
	}

	if len(questions) == 0 {
		report.Errors = append(report.Errors, ImportError{
			File: path, Index: -1,
			Message: fmt.Sprintf("no valid questions for topic %q", topic),
		})
		return
	}

	bank[topic] = questions
	report.TopicsImported++
	report.QuestionsImported += len(questions)
}

type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string { return e.msg }

func errField(err error) string {
	if fe, ok := err.(*fieldError); ok {
		return fe.field
	}
	return ""
}

// validateQuestion enforces the bank invariants: non-empty text, at least
// two options, and correct_options a non-empty subset of the option keys.
func validateQuestion(qy questionYAML) error {
	if strings.TrimSpace(qy.Question) == "" {
		return &fieldError{"question", "question text is empty"}
	}
	if len(qy.Options) < 2 {
		return &fieldError{"options", "a question needs at least two options"}
	}
	if len(qy.CorrectOptions) == 0 {
		return &fieldError{"correct_options", "correct_options must not be empty"}
	}
	seen := make(map[string]bool)
	for _, key := range qy.CorrectOptions {
		if _, ok := qy.Options[key]; !ok {
			return &fieldError{"correct_options", fmt.Sprintf("correct option %q is not an option key", key)}
		}
		if seen[key] {
			return &fieldError{"correct_options", fmt.Sprintf("correct option %q listed twice", key)}
		}
		seen[key] = true
	}
	return nil
}
