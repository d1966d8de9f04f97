// Package export denormalizes stored sessions into per-session text reports
// and a run-scoped CSV summary.
//
// An export run begins when a destination is chosen. Every session exported
// during the run appends one row to the same summary file, named after the
// run's start time. Choosing a different destination starts a new run.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jling-NM/CACTI-sub000/internal/logging"
	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
)

// ErrNoDestination is returned by Export before SetDestination succeeds.
var ErrNoDestination = errors.New("export destination not set")

const (
	reportSuffix  = "_export.txt"
	summaryPrefix = "casaa_summary_export_"
	summaryStamp  = "20060102150405"
)

// Failure records a session that could not be exported.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Result summarizes one Export call. Paths are absolute.
type Result struct {
	Exported []string
	Skipped  []string
	Failed   []Failure
}

// Exporter carries the state of an export run. It is not safe for
// concurrent use.
type Exporter struct {
	cats   *catalog.Set
	logger *slog.Logger
	now    func() time.Time

	dest      string
	runStart  time.Time
	runID     string
	processed map[string]bool
	reports   map[string]string // report path -> session it was written for
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for run and per-session events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New returns an Exporter that resolves codes and globals against cats.
func New(cats *catalog.Set, opts ...Option) *Exporter {
	e := &Exporter{
		cats:   cats,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDestination chooses the output directory, creating it if needed.
// Setting the current destination again keeps the run; any other directory
// starts a new run with a fresh timestamp, summary file, and processed set.
func (e *Exporter) SetDestination(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}
	if e.dest == abs {
		return nil
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating run id: %w", err)
	}
	e.dest = abs
	e.runStart = e.now()
	e.runID = runID.String()
	e.processed = make(map[string]bool)
	e.reports = make(map[string]string)
	e.logger.Info("export run started", "run_id", e.runID, "destination", abs, "summary", e.SummaryPath())
	return nil
}

// Destination returns the current output directory, or "" before
// SetDestination.
func (e *Exporter) Destination() string {
	return e.dest
}

// RunID identifies the current run in logs.
func (e *Exporter) RunID() string {
	return e.runID
}

// SummaryPath returns the summary CSV path of the current run, or "" before
// SetDestination.
func (e *Exporter) SummaryPath() string {
	if e.dest == "" {
		return ""
	}
	return filepath.Join(e.dest, summaryPrefix+e.runStart.Format(summaryStamp)+".csv")
}

// Export writes a report and a summary row for each session among inputs.
// Directories contribute their immediate session files. Sessions already
// exported in this run are skipped. A session that fails is recorded in
// Result.Failed and the rest are still exported.
func (e *Exporter) Export(ctx context.Context, inputs []string) (Result, error) {
	var res Result
	if e.dest == "" {
		return res, ErrNoDestination
	}
	logger := e.logger.With("run_id", e.runID)

	files, failed := expandInputs(inputs)
	res.Failed = append(res.Failed, failed...)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if e.processed[path] {
			res.Skipped = append(res.Skipped, path)
			logger.Debug("session already exported", "session", path)
			continue
		}
		if err := e.exportSession(ctx, path); err != nil {
			res.Failed = append(res.Failed, Failure{Path: path, Err: err})
			logger.Warn("session export failed", "session", path, "error", err)
			continue
		}
		e.processed[path] = true
		res.Exported = append(res.Exported, path)
		logger.Info("session exported", "session", path)
	}
	return res, nil
}

// expandInputs turns inputs into a list of absolute session paths, in input
// order with each directory's children sorted by name, without duplicates.
func expandInputs(inputs []string) ([]string, []Failure) {
	var (
		files  []string
		failed []Failure
		seen   = make(map[string]bool)
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			failed = append(failed, Failure{Path: in, Err: err})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			failed = append(failed, Failure{Path: abs, Err: err})
			continue
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		entries, err := os.ReadDir(abs)
		if err != nil {
			failed = append(failed, Failure{Path: abs, Err: err})
			continue
		}
		var children []string
		for _, ent := range entries {
			if ent.IsDir() || !isSessionFile(ent.Name()) {
				continue
			}
			children = append(children, filepath.Join(abs, ent.Name()))
		}
		sort.Strings(children)
		for _, c := range children {
			add(c)
		}
	}
	return files, failed
}

func isSessionFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), sqlite.SessionExt)
}

func (e *Exporter) exportSession(ctx context.Context, path string) error {
	store, err := sqlite.Open(ctx, path, sqlite.ReadOnly(), sqlite.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer store.Close()

	rep, err := readReport(ctx, store, e.cats)
	if err != nil {
		return err
	}
	reportPath := e.reportPath(path)
	if err := writeReport(reportPath, rep); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	e.reports[reportPath] = path
	if err := appendSummary(e.SummaryPath(), e.cats, rep); err != nil {
		return fmt.Errorf("appending summary: %w", err)
	}
	return nil
}

// reportPath names the report for session after its file name. When another
// session of this run already took that name, the parent directory name is
// added, then a counter.
func (e *Exporter) reportPath(session string) string {
	base := filepath.Base(session)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	candidates := []string{
		stem,
		stem + "_" + filepath.Base(filepath.Dir(session)),
	}
	for _, c := range candidates {
		p := filepath.Join(e.dest, c+reportSuffix)
		if owner, taken := e.reports[p]; !taken || owner == session {
			return p
		}
	}
	for n := 2; ; n++ {
		p := filepath.Join(e.dest, fmt.Sprintf("%s_%d%s", candidates[1], n, reportSuffix))
		if owner, taken := e.reports[p]; !taken || owner == session {
			return p
		}
	}
}
