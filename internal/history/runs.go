package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cuesync/internal/services"
)

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded alignment.
type Run struct {
	ID                 string
	Job                string
	TranscriptPath     string
	ReferencePath      string
	OutputPath         string
	Language           string
	Tokenizer          string
	Status             services.RunStatus
	LinesEmitted       int
	LinesSkipped       int
	DocumentSimilarity float64
	ErrorMessage       string
	StartedAt          time.Time
	FinishedAt         *time.Time
}

// Outcome is what Finish records about a run.
type Outcome struct {
	Status             services.RunStatus
	Language           string
	Tokenizer          string
	LinesEmitted       int
	LinesSkipped       int
	DocumentSimilarity float64
	Err                error
}

// Begin inserts a running entry and returns it with a fresh ID.
func (s *Store) Begin(ctx context.Context, run Run) (*Run, error) {
	run.ID = uuid.NewString()
	run.Status = services.RunRunning
	run.StartedAt = time.Now().UTC()

	_, err := s.exec(ctx,
		`INSERT INTO runs (
            id, job, transcript_path, reference_path, output_path,
            language, tokenizer, status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		nullableString(run.Job),
		run.TranscriptPath,
		run.ReferencePath,
		nullableString(run.OutputPath),
		nullableString(run.Language),
		nullableString(run.Tokenizer),
		string(run.Status),
		run.StartedAt.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &run, nil
}

// Finish records the outcome of a run.
func (s *Store) Finish(ctx context.Context, id string, outcome Outcome) error {
	var errText any
	if outcome.Err != nil {
		errText = outcome.Err.Error()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET
            status = ?, language = COALESCE(?, language), tokenizer = COALESCE(?, tokenizer),
            lines_emitted = ?, lines_skipped = ?, document_similarity = ?,
            error_message = ?, finished_at = ?
        WHERE id = ?`,
		string(outcome.Status),
		nullableString(outcome.Language),
		nullableString(outcome.Tokenizer),
		outcome.LinesEmitted,
		outcome.LinesSkipped,
		outcome.DocumentSimilarity,
		errText,
		time.Now().UTC().Format(timestampLayout),
		id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

const runColumns = `id, job, transcript_path, reference_path, output_path, language, tokenizer,
    status, lines_emitted, lines_skipped, document_similarity, error_message, started_at, finished_at`

// Get returns a single run.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// List returns the most recent runs first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int, statuses ...services.RunStatus) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	args := make([]any, 0, len(statuses)+1)
	if len(statuses) > 0 {
		query += ` WHERE status IN (?` + strings.Repeat(",?", len(statuses)-1) + `)`
		for _, status := range statuses {
			args = append(args, string(status))
		}
	}
	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		job        sql.NullString
		output     sql.NullString
		lang       sql.NullString
		tokenizer  sql.NullString
		status     string
		similarity sql.NullFloat64
		errText    sql.NullString
		startedAt  string
		finishedAt sql.NullString
	)
	if err := scanner.Scan(
		&run.ID, &job, &run.TranscriptPath, &run.ReferencePath, &output, &lang, &tokenizer,
		&status, &run.LinesEmitted, &run.LinesSkipped, &similarity, &errText, &startedAt, &finishedAt,
	); err != nil {
		return nil, err
	}
	run.Job = job.String
	run.OutputPath = output.String
	run.Language = lang.String
	run.Tokenizer = tokenizer.String
	run.Status = services.RunStatus(status)
	run.DocumentSimilarity = similarity.Float64
	run.ErrorMessage = errText.String
	if ts, err := time.Parse(timestampLayout, startedAt); err == nil {
		run.StartedAt = ts
	}
	if finishedAt.Valid {
		if ts, err := time.Parse(timestampLayout, finishedAt.String); err == nil {
			run.FinishedAt = &ts
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

