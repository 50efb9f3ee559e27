package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"menoassist-chatbot/internal/consult"
	"menoassist-chatbot/internal/core"
	"menoassist-chatbot/internal/db"
	"menoassist-chatbot/internal/funnel"
	httpserver "menoassist-chatbot/internal/http"
	"menoassist-chatbot/internal/llm"
	"menoassist-chatbot/internal/mail"
	"menoassist-chatbot/internal/session"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables; a missing .env file is fine in production.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}
	// Open database connection
	dbConn, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	repo := db.NewRepository(dbConn)

	notifyChannel := os.Getenv("POSTGRES_NOTIFY_CHANNEL")
	if notifyChannel == "" {
		notifyChannel = "consultations"
	}
	notifier := db.NewNotifier(dbConn, notifyChannel)

	// Initialize the OpenAI client, probing the fine-tuned model first.
	llmClient, readiness := llm.NewOpenAIClient(context.Background(), core.AskSystemPrompt)
	if readiness.Degraded {
		log.Printf("llm degraded to %s: %s", readiness.Model, readiness.Reason)
	} else {
		log.Printf("llm ready with model %s", readiness.Model)
	}

	// Build the retrieval index over the reference documents.
	docsDir := os.Getenv("DOCUMENTS_DIR")
	if docsDir == "" {
		docsDir = "Documents"
	}
	docs, err := core.LoadTextFiles(docsDir)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	index, err := core.BuildIndex(context.Background(), llmClient, docs)
	if err != nil {
		log.Fatalf("failed to build document index: %v", err)
	}
	log.Printf("indexed %d documents from %s", index.Len(), docsDir)

	askService := core.NewAskService(llmClient, index)
	engine := funnel.NewEngine(repo)
	store := session.NewStore()
	mailer := mail.NewSMTPMailerFromEnv()
	consultService := consult.NewService(repo, mailer)

	srv, err := httpserver.NewServer(store, engine, repo, consultService, askService, notifier)
	if err != nil {
		log.Fatalf("failed to construct server: %v", err)
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Printf("Listening on %s", addr)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
