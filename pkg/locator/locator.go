package locator

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-errors/errors"
)

// DateLayout is the calendar date format used in log file names.
const DateLayout = "2006-01-02"

// removeFile is os.Remove, replaced in tests.
var removeFile = os.Remove

// Locator resolves application identifiers and dates to log files under a
// single root directory. Files are named log-{app}-{YYYY-MM-DD}.txt.
//
// A Locator is not safe for concurrent reconfiguration.
type Locator struct {
	root string
}

// New returns an unconfigured Locator.
func New() *Locator {
	return &Locator{}
}

// NewWithRoot returns a Locator configured with path.
func NewWithRoot(path string) (*Locator, error) {
	l := New()
	if err := l.Configure(path); err != nil {
		return nil, err
	}
	return l, nil
}

// Configure sets the root directory. The path must name an existing
// directory; it is stored in absolute, symlink-free form. Configure may be
// called again to point the locator somewhere else.
func (l *Locator) Configure(path string) error {
	if path == "" {
		return errors.Errorf("%w: path is empty", ErrInvalidConfiguration)
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrInvalidConfiguration, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return errors.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	l.root = resolved
	slog.Debug("log path configured", "root", resolved)
	return nil
}

// Root returns the configured root, or "" when unset.
func (l *Locator) Root() string {
	return l.root
}

// FileName returns the log file name for app on date.
func FileName(app string, date time.Time) string {
	return "log-" + app + "-" + date.Format(DateLayout) + ".txt"
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidArgument, s)
	}
	return d, nil
}

// ListFiles returns every file under the root whose name matches
// log-{app}*.txt, sorted. No match yields an empty slice.
func (l *Locator) ListFiles(app string) ([]string, error) {
	if err := checkApp(app); err != nil {
		return nil, err
	}
	if l.root == "" {
		return nil, ErrNotConfigured
	}

	matches, err := l.glob("log-" + escapeMeta(app) + "*.txt")
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// FindFile returns the log file for app on date. When several files match
// the lexicographically first one wins.
func (l *Locator) FindFile(app string, date time.Time) (string, error) {
	if err := checkApp(app); err != nil {
		return "", err
	}
	if date.IsZero() {
		return "", errors.Errorf("%w: date not set", ErrInvalidArgument)
	}
	if l.root == "" {
		return "", ErrNotConfigured
	}

	name := FileName(app, date)
	matches, err := l.glob(escapeMeta(name))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", errors.Errorf("%w: %s", ErrNotFound, name)
	}
	return matches[0], nil
}

// DeleteFile removes the log file for app on date.
func (l *Locator) DeleteFile(app string, date time.Time) error {
	path, err := l.FindFile(app, date)
	if err != nil {
		return err
	}
	if err := removeFile(path); err != nil {
		return errors.Errorf("%w: %w", ErrDeletionFailed, err)
	}
	slog.Debug("log file deleted", "path", path)
	return nil
}

func (l *Locator) glob(pattern string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(l.root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("glob %s: %w", pattern, err)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(l.root, name))
	}
	return paths, nil
}

func checkApp(app string) error {
	if app == "" {
		return errors.Errorf("%w: application identifier not set", ErrInvalidArgument)
	}
	if strings.ContainsAny(app, `/\`) {
		return errors.Errorf("%w: application identifier %q contains a path separator", ErrInvalidArgument, app)
	}
	return nil
}

// escapeMeta makes s match literally in a doublestar pattern.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
