// Command analyze runs the full pipeline for a single document and prints
// the assessment as JSON. Useful for trying out keyword tables and score
// calibration without the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"finhealth/pkg/core/config"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/normalize"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/scoring"
	"finhealth/pkg/core/store"
	"finhealth/pkg/core/synthesis"
	"finhealth/pkg/models"
)

func main() {
	var (
		filePath     = flag.String("file", "", "path to the financial document")
		declaredType = flag.String("type", "delimited-text", "document type: tabular, delimited-text, portable-document")
		industry     = flag.String("industry", "General", "company industry")
		language     = flag.String("lang", "en", "assessment language code")
		metricsOnly  = flag.Bool("metrics-only", false, "stop after metric computation, skip the AI call")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	fileBytes, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("could not read %s: %v", *filePath, err)
	}

	mem := store.NewMemoryStore()
	provider := llm.NewGeminiProvider(settings.AI.APIKey, settings.AI.Model)
	service := pipeline.NewAssessmentService(
		normalize.New(tables),
		metrics.NewEngine(),
		scoring.NewModel(tables),
		synthesis.New(provider, tables, synthesis.Options{
			Timeout:     settings.AI.Timeout,
			MaxAttempts: settings.AI.MaxAttempts,
			BackoffBase: settings.AI.BackoffBase,
		}),
		mem,
		mem,
	)

	ctx := context.Background()
	profile := models.CompanyProfile{ID: "cli", Name: "CLI Company", Industry: *industry}

	st, err := service.IngestDocument(ctx, profile.ID, fileBytes, models.DocumentType(*declaredType))
	if err != nil {
		log.Fatalf("normalization failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "normalized %d line items (%d of %d rows skipped)\n",
		len(st.Items), st.SkippedRows, st.TotalRows)

	if *metricsOnly {
		history, err := service.MetricsHistory(ctx, profile.ID)
		if err != nil {
			log.Fatalf("metric computation failed: %v", err)
		}
		printJSON(history)
		return
	}

	assessment, err := service.GenerateAssessment(ctx, profile, *language)
	if err != nil {
		log.Fatalf("assessment generation failed: %v", err)
	}
	printJSON(assessment)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("could not encode output: %v", err)
	}
}
