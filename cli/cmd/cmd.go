package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/reflex/log"
	"github.com/ardnew/reflex/script"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdout returns the output writer of the kong context in ctx.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource names standard input in a source list.
const stdinSource = "-"

type sourcesKey struct{}

// Sources is the ordered, duplicate-free list of script files named on the
// command line.
type Sources struct {
	paths []string
	stdin bool
}

// WithSources returns a copy of ctx carrying the script files in paths.
//
// Paths resolving to the same file (through symlinks or relative paths) are
// kept once. Every "-" names standard input, which is read last.
func WithSources(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, makeSources(paths))
}

func sourcesFrom(ctx context.Context) *Sources {
	s, _ := ctx.Value(sourcesKey{}).(*Sources)

	return s
}

func makeSources(paths []string) *Sources {
	var s Sources

	seen := make(map[fileKey]struct{})

	for _, path := range paths {
		if path == stdinSource {
			s.stdin = true

			continue
		}

		resolved, key, ok := identify(path)
		if !ok {
			s.paths = append(s.paths, path)

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		s.paths = append(s.paths, resolved)
	}

	return &s
}

// IsZero reports whether s names no input.
func (s *Sources) IsZero() bool {
	return s == nil || (len(s.paths) == 0 && !s.stdin)
}

// Paths returns the files of s, without standard input.
func (s *Sources) Paths() []string {
	if s == nil {
		return nil
	}

	return append([]string{}, s.paths...)
}

// Open returns the concatenation of every source, one newline between
// each, and closes the files when closed.
func (s *Sources) Open() (io.ReadCloser, error) {
	if s.IsZero() {
		return nil, ErrNoSource
	}

	var (
		readers []io.Reader
		files   multiCloser
	)

	for _, path := range s.paths {
		f, err := os.Open(path)
		if err != nil {
			_ = files.Close()

			return nil, ErrReadSource.Wrap(err).With(slog.String("path", path))
		}

		files = append(files, f)
		readers = append(readers, f, strings.NewReader("\n"))
	}

	if s.stdin {
		readers = append(readers, os.Stdin)
	}

	return struct {
		io.Reader
		io.Closer
	}{io.MultiReader(readers...), files}, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error

	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// loadScript parses the sources in ctx.
func loadScript(ctx context.Context, logger log.Logger) (*script.Script, error) {
	rc, err := sourcesFrom(ctx).Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return script.ParseReader(ctx, rc, script.WithLogger(logger))
}

// fileKey identifies a file by device and inode.
type fileKey struct {
	dev uint64
	ino uint64
}

// identify resolves path to an absolute, symlink-free path and its fileKey.
func identify(path string) (string, fileKey, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return resolved, fileKey{}, false
	}

	return resolved, fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
