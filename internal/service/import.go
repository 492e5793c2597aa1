package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bart6114/trainy/internal/analysis"
	"github.com/bart6114/trainy/internal/importer"
	"github.com/bart6114/trainy/internal/store"
)

// ImportService orchestrates importing FIT files and recomputing metrics
type ImportService struct {
	store      *store.DB
	exportPath string
}

// NewImportService creates a new import service watching the given export directory
func NewImportService(store *store.DB, exportPath string) *ImportService {
	return &ImportService{
		store:      store,
		exportPath: exportPath,
	}
}

// ImportProgress reports progress during an import run
type ImportProgress struct {
	Phase       string // "files", "metrics", "load"
	Total       int
	Completed   int
	CurrentFile string
	Error       error
}

// ImportResult contains the results of an import run
type ImportResult struct {
	FilesFound      int
	FilesImported   int
	FilesSkipped    int
	MetricsComputed int
	DaysComputed    int
	Errors          []error
}

// ImportAll performs a full run: scan files -> activity metrics -> load series
func (s *ImportService) ImportAll(ctx context.Context, progress chan<- ImportProgress) (*ImportResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &ImportResult{}

	// Phase 1: Import new FIT files
	if err := s.importFiles(ctx, progress, result); err != nil {
		return result, fmt.Errorf("importing files: %w", err)
	}

	// Phase 2: Compute per-activity metrics
	if err := s.computeMetrics(ctx, progress, result); err != nil {
		return result, fmt.Errorf("computing metrics: %w", err)
	}

	// Phase 3: Rebuild the daily training load series
	if err := s.rebuildLoadSeries(ctx, progress, result); err != nil {
		return result, fmt.Errorf("rebuilding load series: %w", err)
	}

	return result, nil
}

// RecomputeAll rebuilds every stored metric without touching the files on
// disk. Used after a threshold profile change, which invalidates all TSS.
func (s *ImportService) RecomputeAll(ctx context.Context, progress chan<- ImportProgress) (*ImportResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &ImportResult{}

	if err := s.computeMetrics(ctx, progress, result); err != nil {
		return result, fmt.Errorf("computing metrics: %w", err)
	}

	if err := s.rebuildLoadSeries(ctx, progress, result); err != nil {
		return result, fmt.Errorf("rebuilding load series: %w", err)
	}

	return result, nil
}

// importFiles scans the export directory and stores any FIT file whose
// content hash hasn't been seen before
func (s *ImportService) importFiles(ctx context.Context, progress chan<- ImportProgress, result *ImportResult) error {
	files, err := importer.ListFiles(s.exportPath)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", s.exportPath, err)
	}

	result.FilesFound = len(files)

	if len(files) == 0 {
		return nil
	}

	if progress != nil {
		progress <- ImportProgress{Phase: "files", Total: len(files), Completed: 0}
	}

	for i, path := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- ImportProgress{
				Phase:       "files",
				Total:       len(files),
				Completed:   i,
				CurrentFile: path,
			}
		}

		hash, err := importer.HashFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
			continue
		}

		exists, err := s.store.HasActivityHash(hash)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("checking %s: %w", path, err))
			continue
		}
		if exists {
			result.FilesSkipped++
			continue
		}

		imported, err := importer.ParseFile(path)
		if err != nil {
			// A bad file shouldn't abort the whole run
			result.Errors = append(result.Errors, err)
			continue
		}

		id, err := s.store.SaveActivity(&imported.Activity)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing %s: %w", path, err))
			continue
		}

		if len(imported.PowerSamples) > 0 {
			if err := s.store.SavePowerSamples(id, imported.PowerSamples); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing power samples for %s: %w", path, err))
				continue
			}
		}
		if len(imported.TraceSamples) > 0 {
			if err := s.store.SaveTraceSamples(id, imported.TraceSamples); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing trace samples for %s: %w", path, err))
				continue
			}
		}

		result.FilesImported++
	}

	if progress != nil {
		progress <- ImportProgress{
			Phase:     "files",
			Total:     len(files),
			Completed: len(files),
		}
	}

	return nil
}

// computeMetrics recalculates the metric bundle for every stored activity
// against the current threshold profile
func (s *ImportService) computeMetrics(ctx context.Context, progress chan<- ImportProgress, result *ImportResult) error {
	profile, err := s.store.CurrentProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	activities, err := s.store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}

	if len(activities) == 0 {
		return nil
	}

	if progress != nil {
		progress <- ImportProgress{Phase: "metrics", Total: len(activities), Completed: 0}
	}

	for i, activity := range activities {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- ImportProgress{
				Phase:       "metrics",
				Total:       len(activities),
				Completed:   i,
				CurrentFile: activity.Title,
			}
		}

		power, trace, err := s.loadTraces(activity)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		metrics := analysis.ComputeActivityMetrics(activity, profile, power, trace)

		if err := s.store.SaveActivityMetrics(&metrics); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving metrics for %d: %w", activity.ID, err))
			continue
		}

		result.MetricsComputed++
	}

	if progress != nil {
		progress <- ImportProgress{
			Phase:     "metrics",
			Total:     len(activities),
			Completed: len(activities),
		}
	}

	return nil
}

// loadTraces fetches the stored sample traces for one activity. Only
// cycling and rowing carry traces; everything else gets empty slices.
func (s *ImportService) loadTraces(activity store.Activity) ([]float64, []analysis.TracePoint, error) {
	if activity.Kind != "cycle" && activity.Kind != "row" {
		return nil, nil, nil
	}

	powerSamples, err := s.store.GetPowerSamples(activity.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading power samples for %d: %w", activity.ID, err)
	}
	power := make([]float64, len(powerSamples))
	for i, p := range powerSamples {
		power[i] = p.Watts
	}

	traceSamples, err := s.store.GetTraceSamples(activity.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading trace samples for %d: %w", activity.ID, err)
	}
	trace := make([]analysis.TracePoint, len(traceSamples))
	for i, t := range traceSamples {
		trace[i] = analysis.TracePoint{TimeS: t.TimeOffset, DistanceM: t.DistanceM}
	}

	return power, trace, nil
}

// rebuildLoadSeries recomputes the full CTL/ATL/TSB series from the
// per-day TSS totals and persists one row per calendar day
func (s *ImportService) rebuildLoadSeries(ctx context.Context, progress chan<- ImportProgress, result *ImportResult) error {
	totals, err := s.store.GetDailyTotals()
	if err != nil {
		return fmt.Errorf("loading daily totals: %w", err)
	}

	if len(totals) == 0 {
		return nil
	}

	byDay := make(map[string]store.DailyTotal, len(totals))
	daily := make([]analysis.DailyTSS, 0, len(totals))
	for _, t := range totals {
		date, err := time.Parse(dateFormat, t.Day)
		if err != nil {
			return fmt.Errorf("parsing day %q: %w", t.Day, err)
		}
		byDay[t.Day] = t
		daily = append(daily, analysis.DailyTSS{Date: date, TSS: t.TSS})
	}

	series := analysis.BuildLoadSeries(daily, 0, 0)

	if progress != nil {
		progress <- ImportProgress{Phase: "load", Total: len(series), Completed: 0}
	}

	for i, point := range series {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		day := point.Date.Format(dateFormat)
		metric := store.DailyMetric{
			Date:     day,
			TotalTSS: point.TotalTSS,
			CTL:      point.CTL,
			ATL:      point.ATL,
			TSB:      point.TSB,
			TSS7Day:  point.TSS7Day,
			TSS30Day: point.TSS30Day,
			TSS90Day: point.TSS90Day,
			ACWR:     point.ACWR,
			Monotony: point.Monotony,
			Strain:   point.Strain,
		}

		// Gap-filled rest days have no activity totals
		if t, ok := byDay[day]; ok {
			metric.ActivityCount = t.Count
			metric.TotalDurationS = t.DurationS
			metric.TotalDistanceM = t.DistanceM
		}

		if err := s.store.UpsertDailyMetric(&metric); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving daily metric %s: %w", day, err))
			continue
		}

		result.DaysComputed++

		if progress != nil && (i+1)%100 == 0 {
			progress <- ImportProgress{Phase: "load", Total: len(series), Completed: i + 1}
		}
	}

	if progress != nil {
		progress <- ImportProgress{
			Phase:     "load",
			Total:     len(series),
			Completed: len(series),
		}
	}

	return nil
}
