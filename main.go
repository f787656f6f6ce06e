
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"mcquiz-server/config"
	"mcquiz-server/explain"
	"mcquiz-server/handlers"
	"mcquiz-server/ingestion"
	"mcquiz-server/middleware"
	"mcquiz-server/quiz"
	"mcquiz-server/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Load the question bank; a missing file degrades to an empty bank with
	// a user-visible notice rather than a crash.
	bankStore := store.New(cfg.QuestionsFile)
	bank, err := bankStore.Load()
	bankMissing := false
	if err != nil {
		if errors.Is(err, store.ErrBankNotFound) {
			log.Printf("%s not found. Please create it with the required questions.", cfg.QuestionsFile)
			bankMissing = true
		} else {
			log.Fatalf("Error loading question bank: %v", err)
		}
	}

	// Optional one-shot import of authored YAML topic files at startup
	if cfg.ImportDir != "" {
		report, err := ingestion.ImportDir(cfg.ImportDir, bank)
		if err != nil {
			log.Printf("Error importing topics from %s: %v", cfg.ImportDir, err)
		} else if report.QuestionsImported > 0 {
			if err := bankStore.Save(bank); err != nil {
				log.Printf("Error saving imported questions: %v", err)
			} else {
				bankMissing = false
			}
		}
	}

	explainClient := explain.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	session := quiz.NewSession(nil)
	app := handlers.NewApp(session, bank, bankStore, explainClient, bankMissing)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize Gin router
	router := gin.Default()

	// Load HTML templates for the quiz UI
	renderer := multitemplate.NewRenderer()
	renderer.AddFromFiles("quiz", "templates/layout.html", "templates/quiz.html")
	router.HTMLRender = renderer

	// Middleware
	router.Use(middleware.Logger()) // Custom logger middleware

	// Quiz page
	router.GET("/", handlers.QuizPage(app))

	// API Routes (version 1)
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/topics", handlers.GetTopics(app))
		apiV1.GET("/session", handlers.GetSessionState(app))
		apiV1.POST("/session/start", handlers.StartQuiz(app))
		apiV1.POST("/session/toggle", handlers.ToggleOption(app))
		apiV1.POST("/session/submit", handlers.SubmitAnswer(app))
		apiV1.POST("/session/explanation", handlers.GetExplanation(app))
		apiV1.POST("/session/next", handlers.NextQuestion(app))
		apiV1.POST("/session/reset", handlers.ResetQuiz(app))
		apiV1.GET("/session/summary", handlers.GetSummary(app))
	}

	// Admin routes
	admin := router.Group("/admin")
	{
		admin.POST("/import", handlers.TriggerImport(app))
	}

	// Start the server
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("MCQuiz Server starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
