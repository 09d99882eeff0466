package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"cuesync/internal/logging"
	"cuesync/internal/services"
)

// Manifest lists the jobs of a batch run.
type Manifest struct {
	Jobs []Job `toml:"jobs"`
}

// LoadManifest reads a TOML manifest of [[jobs]] tables. Relative paths are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "manifest", "Failed to open manifest", err)
	}
	defer file.Close()

	var manifest Manifest
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifest); err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "manifest", fmt.Sprintf("Manifest %s is invalid", path), err)
	}
	if len(manifest.Jobs) == 0 {
		return nil, services.Wrap(services.ErrValidation, "batch", "manifest", "Manifest has no jobs", nil)
	}

	base := filepath.Dir(path)
	for i := range manifest.Jobs {
		job := &manifest.Jobs[i]
		job.TranscriptPath = resolveRelative(base, job.TranscriptPath)
		job.ReferencePath = resolveRelative(base, job.ReferencePath)
		job.OutputPath = resolveRelative(base, job.OutputPath)
		job.ReportPath = resolveRelative(base, job.ReportPath)
	}
	return &manifest, nil
}

func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// BatchResult pairs a job with its outcome.
type BatchResult struct {
	Job    Job
	Result *Result
	Err    error
}

// RunBatch runs jobs concurrently, bounded by the configured batch
// concurrency. A failing job does not stop its siblings; the returned error
// joins every job failure. Results keep the order of jobs.
func (s *Service) RunBatch(ctx context.Context, jobs []Job) ([]BatchResult, error) {
	results := make([]BatchResult, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(s.cfg.Align.BatchConcurrency, 1))
	for i, job := range jobs {
		results[i].Job = job
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			result, err := s.Run(groupCtx, job)
			results[i].Result = result
			results[i].Err = err
			return nil
		})
	}
	_ = group.Wait()

	var errs []error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			errs = append(errs, fmt.Errorf("%s: %w", r.Job.DisplayName(), r.Err))
		}
	}
	s.logger.Info("batch complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("jobs", len(jobs)),
		logging.Int("failed", failed),
	)
	return results, errors.Join(errs...)
}
