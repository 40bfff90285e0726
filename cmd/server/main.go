package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/thandol/j101-generator/internal/adapters/j101"
	"github.com/thandol/j101-generator/internal/adapters/pdffill"
	sqliteadapter "github.com/thandol/j101-generator/internal/adapters/sqlite"
	"github.com/thandol/j101-generator/internal/domain"
	"github.com/thandol/j101-generator/internal/handlers"
	"github.com/thandol/j101-generator/internal/wizard"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}

	// Flags override environment, environment overrides defaults.
	port := pflag.String("port", envOr("PORT", "8080"), "HTTP listen port")
	dsn := pflag.String("db", envOr("DB_PATH", "j101.db"), "SQLite session database path")
	tmpl := pflag.String("template", envOr("J101_TEMPLATE", "j101_fillable.pdf"), "fillable J101 PDF template path")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	pipeline := domain.DefaultPipeline()
	store, err := sqliteadapter.New(*dsn, pipeline)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	nav, err := wizard.NewNavigator(pipeline, wizard.Validators(nil))
	if err != nil {
		log.Fatalf("failed to build wizard: %v", err)
	}

	cfg := handlers.Config{
		TemplatePath:       *tmpl,
		ClearAfterGenerate: os.Getenv("CLEAR_AFTER_GENERATE") == "1",
		DevAutofill:        os.Getenv("DEV_AUTOFILL") == "1",
	}
	if cfg.DevAutofill {
		logger.Warn("dev autofill route enabled; do not run like this in production")
	}

	h := handlers.New(store, pdffill.NewFiller(logger), nav, j101.NewMapper(logger), cfg, logger)

	log.Printf("J101 Maintenance Application Assistant running on http://localhost:%s", *port)
	log.Printf("Database: %s  Template: %s", *dsn, *tmpl)
	if err := http.ListenAndServe(":"+*port, h.Routes()); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
