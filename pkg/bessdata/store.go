package bessdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/output"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store serves each category from its JSON artifact, extracting from the
// workbook only when the artifact is missing. An existing artifact is
// authoritative: it is decoded verbatim and never revalidated against the
// workbook. Results are memoized for the life of the Store; returned slices
// are shared and must not be modified.
type Store struct {
	workbook string
	dir      string
	opts     Options
	entries  map[models.Category]*entry
}

// entry guards one category so at most one extraction per category runs at a time.
type entry struct {
	mu      sync.Mutex
	loaded  bool
	records any
	raw     []byte
}

// NewStore creates a Store reading workbook and keeping artifacts in dir.
func NewStore(workbook, dir string, opts Options) *Store {
	s := &Store{
		workbook: workbook,
		dir:      dir,
		opts:     opts.withDefaults(),
		entries:  make(map[models.Category]*entry, len(models.Categories)),
	}
	for _, c := range models.Categories {
		s.entries[c] = &entry{}
	}
	return s
}

// ArtifactPath returns where the artifact of category c lives.
func (s *Store) ArtifactPath(c models.Category) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// Suppliers returns the cached or freshly extracted supplier records.
// On a cache hit the artifact is decoded into the record type: keys the type
// does not know are dropped and a null lat/lon reads as 0. Use Artifact for
// the stored bytes unchanged.
func (s *Store) Suppliers(ctx context.Context) ([]models.SupplierRecord, error) {
	return loadOrExtract(ctx, s, models.CategorySuppliers,
		func(x *Extraction) []models.SupplierRecord { return x.Suppliers },
		models.SupplierRecord.Sanitize,
	)
}

// Projects returns the cached or freshly extracted project records. Like
// Suppliers, a cache hit is a typed view of the artifact.
func (s *Store) Projects(ctx context.Context) ([]models.ProjectRecord, error) {
	return loadOrExtract(ctx, s, models.CategoryProjects,
		func(x *Extraction) []models.ProjectRecord { return x.Projects },
		models.ProjectRecord.Sanitize,
	)
}

// LoadOrExtract returns the records of category c as a slice of the
// category's record type.
func (s *Store) LoadOrExtract(ctx context.Context, c models.Category) (any, error) {
	switch c {
	case models.CategorySuppliers:
		return s.Suppliers(ctx)
	case models.CategoryProjects:
		return s.Projects(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

// Artifact returns the serialized records of category c exactly as stored.
func (s *Store) Artifact(ctx context.Context, c models.Category) ([]byte, error) {
	if _, err := s.LoadOrExtract(ctx, c); err != nil {
		return nil, err
	}
	e := s.entries[c]
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.raw, nil
}

// Warm loads every category concurrently. Call it once at startup so later
// reads are served from memory.
func (s *Store) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range models.Categories {
		g.Go(func() error {
			_, err := s.LoadOrExtract(gctx, c)
			return err
		})
	}
	return g.Wait()
}

// Ready returns nil once every category has been loaded.
func (s *Store) Ready(_ context.Context) error {
	for _, c := range models.Categories {
		e := s.entries[c]
		e.mu.Lock()
		loaded := e.loaded
		e.mu.Unlock()
		if !loaded {
			return fmt.Errorf("%s not loaded", c)
		}
	}
	return nil
}

// Regenerate re-extracts every category from the workbook and overwrites
// the artifacts, ignoring whatever is cached. Both artifacts are replaced
// together: on any failure the files on disk and the memoized state are left
// as they were.
func (s *Store) Regenerate(ctx context.Context) error {
	for _, c := range models.Categories {
		e := s.entries[c]
		e.mu.Lock()
		defer e.mu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := s.opts.Clock.Now()
	x, err := Extract(s.workbook, s.opts)
	if err != nil {
		return err
	}
	elapsed := s.opts.Clock.Since(start).Seconds()

	suppliers := sanitizeAll(x.Suppliers, models.SupplierRecord.Sanitize)
	projects := sanitizeAll(x.Projects, models.ProjectRecord.Sanitize)

	supplierArt, err := encodeArtifact(models.CategorySuppliers, suppliers, len(suppliers))
	if err != nil {
		return err
	}
	projectArt, err := encodeArtifact(models.CategoryProjects, projects, len(projects))
	if err != nil {
		return err
	}
	if err := s.write(supplierArt, projectArt); err != nil {
		return err
	}

	s.entries[models.CategorySuppliers].set(suppliers, supplierArt.raw)
	s.entries[models.CategoryProjects].set(projects, projectArt.raw)
	for _, c := range models.Categories {
		s.opts.Metrics.ExtractionDuration.WithLabelValues(string(c)).Observe(elapsed)
	}
	s.opts.Logger.Info("artifacts regenerated",
		zap.Int("suppliers", len(suppliers)),
		zap.Int("projects", len(projects)),
	)
	return nil
}

func (e *entry) set(records any, raw []byte) {
	e.records = records
	e.raw = raw
	e.loaded = true
}

func loadOrExtract[T any](ctx context.Context, s *Store, c models.Category, pick func(*Extraction) []T, clean func(T) T) ([]T, error) {
	e := s.entries[c]
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return e.records.([]T), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.ArtifactPath(c)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		var records []T
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode artifact %s: %w", path, err)
		}
		s.opts.Metrics.CacheLookups.WithLabelValues(string(c), "hit").Inc()
		s.opts.Logger.Debug("artifact loaded", zap.String("category", string(c)), zap.String("path", path))
		e.set(records, raw)
		return records, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	s.opts.Metrics.CacheLookups.WithLabelValues(string(c), "miss").Inc()
	opts := s.opts
	opts.Categories = []models.Category{c}

	start := s.opts.Clock.Now()
	x, err := Extract(s.workbook, opts)
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.ExtractionDuration.WithLabelValues(string(c)).Observe(s.opts.Clock.Since(start).Seconds())

	records := sanitizeAll(pick(x), clean)
	art, err := encodeArtifact(c, records, len(records))
	if err != nil {
		return nil, err
	}
	if err := s.write(art); err != nil {
		return nil, err
	}
	e.set(records, art.raw)
	return records, nil
}

func sanitizeAll[T any](in []T, clean func(T) T) []T {
	out := make([]T, len(in))
	for i, r := range in {
		out[i] = clean(r)
	}
	return out
}

type artifact struct {
	category models.Category
	raw      []byte
	records  int
}

func encodeArtifact(c models.Category, records any, n int) (artifact, error) {
	raw, err := output.ToJSON(records, true)
	if err != nil {
		return artifact{}, fmt.Errorf("encode %s: %w", c, err)
	}
	return artifact{category: c, raw: raw, records: n}, nil
}

// write replaces the given artifacts as a group. Every artifact is staged in
// a temp file first, so a failed write leaves all of them untouched. If a
// rename fails, artifacts already renamed are restored.
func (s *Store) write(arts ...artifact) error {
	staged := make([]stagedFile, 0, len(arts))
	discardAll := func() {
		for _, f := range staged {
			f.discard()
		}
	}
	fail := func(err error) error {
		for _, a := range arts {
			s.opts.Metrics.ArtifactWrites.WithLabelValues(string(a.category), "error").Inc()
		}
		return err
	}

	for _, a := range arts {
		f, err := stage(s.ArtifactPath(a.category), a.raw)
		if err != nil {
			discardAll()
			return fail(fmt.Errorf("write artifact %s: %w", s.ArtifactPath(a.category), err))
		}
		staged = append(staged, f)
	}

	previous := make([][]byte, len(staged))
	for i, f := range staged {
		if raw, err := os.ReadFile(f.path); err == nil {
			previous[i] = raw
		}
	}

	for i, f := range staged {
		if err := f.commit(); err != nil {
			discardAll()
			for j := range i {
				restore(staged[j].path, previous[j], s.opts.Logger)
			}
			return fail(fmt.Errorf("write artifact %s: %w", f.path, err))
		}
	}

	for _, a := range arts {
		s.opts.Metrics.ArtifactWrites.WithLabelValues(string(a.category), "success").Inc()
		s.opts.Logger.Info("artifact written",
			zap.String("category", string(a.category)),
			zap.String("path", s.ArtifactPath(a.category)),
			zap.Int("records", a.records),
		)
	}
	return nil
}

// restore puts back the previous content of path, or removes it when there
// was none.
func restore(path string, previous []byte, logger *zap.Logger) {
	var err error
	if previous == nil {
		err = os.Remove(path)
	} else {
		err = writeFileAtomic(path, previous)
	}
	if err != nil {
		logger.Error("artifact rollback failed", zap.String("path", path), zap.Error(err))
	}
}

// stagedFile is a fully written temp file waiting to replace path.
type stagedFile struct {
	tmp  string
	path string
}

// stage writes data to a temp file next to path.
func stage(path string, data []byte) (stagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stagedFile{}, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stagedFile{}, err
	}
	f := stagedFile{tmp: tmp.Name(), path: path}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		f.discard()
		return stagedFile{}, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		f.discard()
		return stagedFile{}, err
	}
	if err := tmp.Close(); err != nil {
		f.discard()
		return stagedFile{}, err
	}
	if err := os.Chmod(f.tmp, 0o644); err != nil {
		f.discard()
		return stagedFile{}, err
	}
	return f, nil
}

func (f stagedFile) commit() error {
	return os.Rename(f.tmp, f.path)
}

// discard removes the temp file; after a successful commit it is a no-op.
func (f stagedFile) discard() {
	os.Remove(f.tmp) //nolint:errcheck // may already be renamed
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path, so readers never observe a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	f, err := stage(path, data)
	if err != nil {
		return err
	}
	if err := f.commit(); err != nil {
		f.discard()
		return err
	}
	return nil
}
