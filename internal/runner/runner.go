// Package runner scores files and directories. It resolves each input's
// dialect, fans scoring out across workers and collects per-file results
// in input order.
package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// Runner scores a batch of script files.
type Runner struct {
	engine  *score.Engine
	dialect string // forced dialect, empty means infer per file
	jobs    int
	verify  bool
	log     *slog.Logger
}

// Options configure a Runner.
type Options struct {
	// Dialect forces one dialect for every input. When empty the dialect
	// is inferred from each file's parent directory name.
	Dialect string
	// Jobs bounds concurrent scoring. Zero or negative means GOMAXPROCS.
	Jobs int
	// Verify compares each computed tier against the file's COMPLEXITY
	// annotation.
	Verify bool
	Log    *slog.Logger
}

// New builds a runner around an engine.
func New(engine *score.Engine, opts Options) *Runner {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		engine:  engine,
		dialect: opts.Dialect,
		jobs:    jobs,
		verify:  opts.Verify,
		log:     log,
	}
}

// FileResult is the outcome of scoring one file.
type FileResult struct {
	Path    string        `json:"path" yaml:"path"`
	Report  *score.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Err     error         `json:"-" yaml:"-"`
	ErrText string        `json:"error,omitempty" yaml:"error,omitempty"`

	// Verification against the file's COMPLEXITY annotation. Expected is
	// nil when the file carries no annotation.
	Expected *score.Tier `json:"expected,omitempty" yaml:"expected,omitempty"`
	Match    bool        `json:"match,omitempty" yaml:"match,omitempty"`
}

// Run scores every script under the given paths. Files are scored
// concurrently; results come back in discovery order. The returned error
// reflects setup problems only, per-file failures live on their results.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	files, err := collect(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql or .ddl files in %s", strings.Join(paths, ", "))
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, path := range files {
		g.Go(func() error {
			results[i] = r.scoreFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) scoreFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		res.ErrText = err.Error()
		return res
	}
	text := string(data)

	dia := r.dialect
	if dia == "" {
		dia = inferDialect(path)
	}

	report, err := r.engine.Score(ctx, score.Script{Text: text, Dialect: dia})
	if err != nil {
		res.Report = report // partial on cancellation
		res.Err = err
		res.ErrText = err.Error()
		return res
	}
	res.Report = report
	r.log.Debug("scored", "file", path, "dialect", dia, "tier", report.Tier.String())

	if r.verify {
		if expected, ok := Annotation(text); ok {
			res.Expected = &expected
			res.Match = expected == report.Tier
			if !res.Match {
				r.log.Warn("tier mismatch",
					"file", path,
					"expected", expected.String(),
					"got", report.Tier.String())
			}
		}
	}
	return res
}

// inferDialect maps a file's parent directory name to a registered
// dialect, falling back to ANSI. Directory trees laid out per dialect
// (oracle/, tsql/, snowflake/) score without any flags.
func inferDialect(path string) string {
	parent := strings.ToLower(filepath.Base(filepath.Dir(path)))
	for _, name := range dialect.List() {
		if parent == name {
			return name
		}
	}
	// Common aliases in assessment exports.
	switch parent {
	case "mssql", "sqlserver", "synapse":
		return "tsql"
	case "plsql":
		return "oracle"
	}
	return "ansi"
}

// annotationPrefix introduces the expected-tier annotation, for example
// "-- COMPLEXITY: MEDIUM". Only the leading comment block is searched.
const annotationPrefix = "COMPLEXITY:"

// Annotation extracts the expected tier from a script's leading comments.
func Annotation(text string) (score.Tier, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "--") {
			break
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, "--"))
		if !strings.HasPrefix(strings.ToUpper(body), annotationPrefix) {
			continue
		}
		label := strings.TrimSpace(body[len(annotationPrefix):])
		return score.ParseTier(strings.ToUpper(label))
	}
	return score.TierLow, false
}

// collect expands files and directories into the sorted list of script
// files to score. Explicit file arguments are taken as-is regardless of
// extension.
func collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".sql", ".ddl":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}
