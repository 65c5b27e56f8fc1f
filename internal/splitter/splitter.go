// Package splitter splits large DDL exports (for example Snowflake
// GET_DDL output) into one file per database object. Statements are
// bounded with the scoring segmenter, so procedure bodies with inner
// semicolons stay whole.
package splitter

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/score"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// maxNameLen caps sanitized object names for filesystem compatibility.
const maxNameLen = 200

// Splitter writes each CREATE statement of its inputs to its own file.
type Splitter struct {
	profile *dialect.Profile
	log     *slog.Logger
}

// New returns a splitter that segments with the given dialect profile.
func New(profile *dialect.Profile, log *slog.Logger) *Splitter {
	if log == nil {
		log = slog.Default()
	}
	return &Splitter{profile: profile, log: log}
}

// Result summarizes one split run.
type Result struct {
	FilesProcessed int
	Statements     int
	Written        int
}

// DefaultOutputDir returns "<input>_split" next to the input path.
func DefaultOutputDir(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+"_split")
}

// Split processes a DDL file or a directory of DDL files into outDir.
// Directory inputs get one output subdirectory per source file.
func (s *Splitter) Split(input, outDir string) (*Result, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		res := &Result{FilesProcessed: 1}
		res.Statements, res.Written, err = s.splitFile(input, outDir)
		return res, err
	}

	files, err := findDDLFiles(input)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql or .ddl files under %s", input)
	}

	res := &Result{}
	for _, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		stmts, written, err := s.splitFile(f, filepath.Join(outDir, stem))
		if err != nil {
			s.log.Warn("split failed", "file", f, "error", err)
			continue
		}
		res.FilesProcessed++
		res.Statements += stmts
		res.Written += written
	}
	return res, nil
}

// splitFile segments one file and writes each CREATE statement to
// outDir/<stem>_NNNN_<type>_<name>.sql.
func (s *Splitter) splitFile(path, outDir string) (statements, written int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	stmts, diags, err := score.Segment(string(data), s.profile)
	if err != nil {
		return 0, 0, fmt.Errorf("segment %s: %w", path, err)
	}
	for _, d := range diags {
		s.log.Warn("segmentation issue", "file", path, "offset", d.Offset, "message", d.Message)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, 0, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n := 0
	for _, stmt := range stmts {
		if len(stmt.Tokens) == 0 || stmt.Tokens[0].Type != token.CREATE {
			continue
		}
		statements++
		n++
		name := fmt.Sprintf("%s_%04d_%s.sql", stem, n, objectName(stmt.Tokens))
		target := filepath.Join(outDir, name)
		if err := os.WriteFile(target, []byte(stmt.Text+"\n"), 0o644); err != nil {
			s.log.Warn("write failed", "file", target, "error", err)
			continue
		}
		written++
		s.log.Info("wrote", "file", target)
	}
	return statements, written, nil
}

// objectName derives "<type>_<name>" from a CREATE statement's tokens,
// skipping OR REPLACE and type modifiers (TEMPORARY, MATERIALIZED,
// EXTERNAL, ...), then dropping any schema prefix from the name.
func objectName(toks []token.Token) string {
	i := 1
	if i+1 < len(toks) && toks[i].Type == token.OR && toks[i+1].Type == token.REPLACE {
		i += 2
	}

	// The object type is the keyword chain up to the first plain
	// identifier, e.g. "MATERIALIZED VIEW" or "FILE FORMAT".
	var kind []string
	for i < len(toks) && toks[i].Type != token.IDENT && toks[i].Type != token.STRING {
		kind = append(kind, strings.ToLower(toks[i].Type.String()))
		i++
	}
	// Multi-word types lexed as identifiers (STREAM, TASK, PIPE, TAG)
	// leave the chain empty; take one identifier as the type then.
	if len(kind) == 0 && i < len(toks) {
		kind = append(kind, strings.ToLower(toks[i].Literal))
		i++
	}

	name := "object"
	for j := i; j < len(toks); j++ {
		if toks[j].Type == token.IDENT || toks[j].Type == token.STRING {
			name = toks[j].Literal
			// Keep only the last dotted component.
			for j+2 < len(toks) && toks[j+1].Type == token.DOT {
				j += 2
				name = toks[j].Literal
			}
			break
		}
		if toks[j].Type == token.LPAREN {
			break
		}
	}

	return sanitize(strings.Join(kind, "_") + "_" + name)
}

// sanitize strips characters that are unsafe in filenames and caps the
// length.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*', '\'', ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxNameLen {
		out = out[:maxNameLen]
	}
	return out
}

// findDDLFiles returns all .sql and .ddl files under dir, sorted.
func findDDLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
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
	sort.Strings(files)
	return files, nil
}
