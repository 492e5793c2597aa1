package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bart6114/trainy/internal/config"
	"github.com/bart6114/trainy/internal/service"
	"github.com/bart6114/trainy/internal/store"
	"github.com/bart6114/trainy/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Point import.export_path at the folder holding your FIT files")
		fmt.Println("and fill in your threshold values (FTP, LTHR, threshold pace).")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Keep the stored threshold profile in sync with the config. Old
	// profile rows stay in place so past metrics remain explainable.
	if err := syncProfile(db, cfg.Athlete); err != nil {
		return fmt.Errorf("syncing profile: %w", err)
	}

	// Create services
	importSvc := service.NewImportService(db, cfg.Import.ExportPath)
	querySvc := service.NewQueryService(db)

	// Launch TUI
	app := tui.NewApp(db, importSvc, querySvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// syncProfile writes a new threshold profile row when the configured
// values differ from the current one
func syncProfile(db *store.DB, athlete config.AthleteConfig) error {
	current, err := db.CurrentProfile()
	if err != nil {
		return err
	}

	next := store.Profile{
		FTPWatts:           athlete.FTPWatts,
		LTHR:               athlete.LTHR,
		MaxHR:              athlete.MaxHR,
		RestingHR:          athlete.RestingHR,
		ThresholdPaceMinKm: athlete.ThresholdPaceMinKm,
		SwimThresholdPace:  athlete.SwimThresholdPace,
		WeightKg:           athlete.WeightKg,
		EffectiveFrom:      time.Now(),
	}

	if current.FTPWatts == next.FTPWatts &&
		current.LTHR == next.LTHR &&
		current.MaxHR == next.MaxHR &&
		current.RestingHR == next.RestingHR &&
		current.ThresholdPaceMinKm == next.ThresholdPaceMinKm &&
		current.SwimThresholdPace == next.SwimThresholdPace &&
		current.WeightKg == next.WeightKg {
		return nil
	}

	_, err = db.SaveProfile(&next)
	return err
}
