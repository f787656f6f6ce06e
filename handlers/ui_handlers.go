// --- mcquiz-server/handlers/ui_handlers.go ---
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// QuizPage renders the built-in quiz UI; all state comes from the JSON API.
// GET /
func QuizPage(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "quiz", gin.H{
			"Title": "MCQ Quiz",
		})
	}
}
