// --- mcquiz-server/handlers/api_handlers.go ---
package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"mcquiz-server/ingestion"
	"mcquiz-server/models"
	"mcquiz-server/quiz"
)

// GetTopics lists selectable topics with question counts, plus "All".
// GET /api/v1/topics
func GetTopics(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()

		names := make([]string, 0, len(app.bank))
		for name := range app.bank {
			names = append(names, name)
		}
		sort.Strings(names)

		total := 0
		topics := make([]models.TopicInfo, 0, len(names)+1)
		for _, name := range names {
			count := len(app.bank[name])
			total += count
			topics = append(topics, models.TopicInfo{Name: name, QuestionCount: count})
		}
		topics = append(topics, models.TopicInfo{Name: quiz.AllTopics, QuestionCount: total})

		c.JSON(http.StatusOK, topics)
	}
}

// GetSessionState returns the current renderable session state.
// GET /api/v1/session
func GetSessionState(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		c.JSON(http.StatusOK, app.view())
	}
}

// StartQuiz draws a shuffled question sequence for the requested topic.
// POST /api/v1/session/start
func StartQuiz(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.mu.Lock()
		defer app.mu.Unlock()
		if err := app.session.Start(app.bank, req.Topic); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.view())
	}
}

// ToggleOption toggles one option key on the in-progress question. Unknown
// keys are a silent no-op inside the session.
// POST /api/v1/session/toggle
func ToggleOption(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.mu.Lock()
		defer app.mu.Unlock()
		if err := app.session.Toggle(req.Key); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.view())
	}
}

// SubmitAnswer scores the current selection and moves to feedback.
// POST /api/v1/session/submit
func SubmitAnswer(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		if _, err := app.session.Submit(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.view())
	}
}

// GetExplanation returns the cached explanation or fetches, caches and
// persists one. The fetch happens under the session mutex, so duplicate
// clicks wait for the first call and then hit the cache.
// POST /api/v1/session/explanation
func GetExplanation(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		text, err := app.session.Explanation(c.Request.Context(), app.explain.Explain, app.bank, app.store)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		view := app.view()
		if view.Feedback != nil {
			view.Feedback.Explanation = text
		}
		c.JSON(http.StatusOK, view)
	}
}

// NextQuestion records the outcome of the current question and advances.
// POST /api/v1/session/next
func NextQuestion(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		if err := app.session.Next(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.view())
	}
}

// ResetQuiz returns the session to topic selection from any state.
// POST /api/v1/session/reset
func ResetQuiz(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		app.session.Reset()
		c.JSON(http.StatusOK, app.view())
	}
}

// GetSummary exports the end-of-quiz report once the session is complete.
// GET /api/v1/session/summary
func GetSummary(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.mu.Lock()
		defer app.mu.Unlock()
		summary, err := app.session.Summary()
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// TriggerImport merges YAML topic files from a local directory into the bank
// and persists it.
// POST /admin/import
func TriggerImport(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		app.mu.Lock()
		defer app.mu.Unlock()
		report, err := ingestion.ImportDir(req.Dir, app.bank)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if report.QuestionsImported > 0 {
			if err := app.store.Save(app.bank); err != nil {
				log.Printf("Error saving bank after import: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist imported questions"})
				return
			}
			app.bankMissing = false
		}
		c.JSON(http.StatusOK, report)
	}
}
