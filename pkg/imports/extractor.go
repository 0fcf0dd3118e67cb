package imports

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Excluder decides whether a package is left out of the graph
type Excluder interface {
	Excluded(pkg string) bool
}

// FileImports is the result of extracting one file
type FileImports struct {
	Path    string
	Package string
	Imports []string
	// Skipped is set when the file has no package or its package is excluded.
	Skipped bool
	// Err is set when the file could not be read. Imports is empty then.
	Err error
}

// Extractor reads compilation units and extracts their dependency packages
type Extractor struct {
	root     string
	filter   Excluder
	cache    *Cache
	observer func(hit bool)
}

// Option configures an Extractor
type Option func(*Extractor)

// WithCache reuses parse results for files whose size and mtime did not change
func WithCache(cache *Cache) Option {
	return func(e *Extractor) {
		e.cache = cache
	}
}

// WithCacheObserver is called on every cache lookup
func WithCacheObserver(fn func(hit bool)) Option {
	return func(e *Extractor) {
		e.observer = fn
	}
}

// NewExtractor creates an extractor for files under root. filter may be nil.
func NewExtractor(root string, filter Excluder, opts ...Option) *Extractor {
	e := &Extractor{
		root:   root,
		filter: filter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the filtered, deduplicated, sorted dependency packages of one file.
// It never fails: an unreadable file yields no imports and records the error.
func (e *Extractor) Extract(path string) FileImports {
	result := FileImports{Path: path}

	pkg, ok := PackageOf(e.root, path)
	if !ok {
		result.Skipped = true
		return result
	}
	result.Package = pkg
	if e.excluded(pkg) {
		result.Skipped = true
		return result
	}

	raw, err := e.read(path)
	if err != nil {
		result.Err = err
		return result
	}

	deps := make([]string, 0, len(raw))
	for _, dep := range raw {
		if !e.excluded(dep) {
			deps = append(deps, dep)
		}
	}
	result.Imports = deps

	return result
}

func (e *Extractor) excluded(pkg string) bool {
	return e.filter != nil && e.filter.Excluded(pkg)
}

func (e *Extractor) read(path string) ([]string, error) {
	if e.cache == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseImports(string(data)), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := e.cache.Get(path, info); ok {
		e.observe(true)
		return cached, nil
	}
	e.observe(false)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed := ParseImports(string(data))
	e.cache.Put(path, info, parsed)

	return parsed, nil
}

func (e *Extractor) observe(hit bool) {
	if e.observer != nil {
		e.observer(hit)
	}
}

// PackageOf derives the dot-separated package of a file from its directory
// relative to root. Files directly under root belong to the default package
// and report false.
func PackageOf(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	lastSlash := strings.LastIndexByte(rel, '/')
	if lastSlash <= 0 {
		return "", false
	}
	return strings.ReplaceAll(rel[:lastSlash], "/", "."), true
}

// ParseImports returns the distinct dependency packages named by the import
// lines of content, sorted. No exclusion is applied.
func ParseImports(content string) []string {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		if pkg, ok := ParseImport(strings.TrimSpace(line)); ok {
			seen[pkg] = struct{}{}
		}
	}

	pkgs := make([]string, 0, len(seen))
	for pkg := range seen {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}

// ParseImport extracts the dependency package from a single trimmed import line.
// It reports false for non-import lines, static imports, wildcard imports and
// imports of default-package types.
func ParseImport(line string) (string, bool) {
	stmt, ok := cutKeyword(line, "import")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(stmt, ';'); i >= 0 {
		stmt = strings.TrimSpace(stmt[:i])
	}

	if _, static := cutKeyword(stmt, "static"); static || strings.HasSuffix(stmt, ".*") {
		return "", false
	}

	lastDot := strings.LastIndexByte(stmt, '.')
	if lastDot <= 0 {
		return "", false
	}
	return stmt[:lastDot], true
}

// cutKeyword strips a leading keyword followed by blank space
func cutKeyword(s, keyword string) (string, bool) {
	if len(s) <= len(keyword) || !strings.HasPrefix(s, keyword) {
		return "", false
	}
	if c := s[len(keyword)]; c != ' ' && c != '\t' {
		return "", false
	}
	return strings.TrimSpace(s[len(keyword):]), true
}
