package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"finhealth/pkg/api/assessments"
	"finhealth/pkg/api/documents"
	"finhealth/pkg/core/config"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/normalize"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/scoring"
	"finhealth/pkg/core/store"
	"finhealth/pkg/core/synthesis"
)

func main() {
	// Environment variables win over .env; absence of the file is fine.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	tables, err := config.LoadTables(settings.Tables.Path)
	if err != nil {
		log.Fatalf("failed to load lookup tables: %v", err)
	}

	ctx := context.Background()

	var docs store.DocumentStore
	var history store.AssessmentStore
	if settings.DB.URL != "" {
		if err := store.InitDB(ctx, settings.DB.URL); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer store.Close()
		docs = store.NewDocumentRepo()
		history = store.NewAssessmentRepo()
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		mem := store.NewMemoryStore()
		docs, history = mem, mem
	}

	provider := llm.NewGeminiProvider(settings.AI.APIKey, settings.AI.Model)
	synthesizer := synthesis.New(provider, tables, synthesis.Options{
		Timeout:     settings.AI.Timeout,
		MaxAttempts: settings.AI.MaxAttempts,
		BackoffBase: settings.AI.BackoffBase,
	})

	service := pipeline.NewAssessmentService(
		normalize.New(tables),
		metrics.NewEngine(),
		scoring.NewModel(tables),
		synthesizer,
		docs,
		history,
	)

	documents.InitHandler(service)
	assessments.InitHandler(service)

	http.HandleFunc("/api/documents/upload", documents.HandleUpload)
	http.HandleFunc("/api/documents/delete", documents.HandleDelete)
	http.HandleFunc("/api/assessments/generate", assessments.HandleGenerate)
	http.HandleFunc("/api/assessments/list", assessments.HandleList)
	http.HandleFunc("/api/assessments/get", assessments.HandleGet)
	http.HandleFunc("/api/metrics/history", assessments.HandleMetrics)
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	})

	addr := fmt.Sprintf(":%d", settings.App.Port)
	log.Printf("[API] listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
