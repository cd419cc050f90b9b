package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli"
	"github.com/alexanderramin/stride/internal/coach"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/llm"
	"github.com/alexanderramin/stride/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.stride/stride.db
	dbPath := os.Getenv("STRIDE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".stride", "stride.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planStore := store.NewSQLiteStore(database)

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewClient(llmCfg, observer)

	var coachObservers []coach.UseCaseObserver
	if logUseCases, _ := strconv.ParseBool(os.Getenv("STRIDE_LOG_USE_CASES")); logUseCases {
		coachObservers = append(coachObservers, coach.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Coach: coach.New(planStore, client, coachObservers...),
		Store: planStore,
		Slots: calendar.NewSlotFinder(&calendar.StaticBusySource{}, nil),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
