package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/gripe/internal/grievance"
)

// FileStore persists grievances as a pretty-printed JSON array in a
// single file. Every operation performs a full load → mutate → save
// cycle; there are no partial updates.
type FileStore struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithClock overrides the wall clock used for created_at timestamps.
// Tests inject a frozen clock for deterministic output.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileStore) { s.now = now }
}

// WithLogger overrides the logger used for corruption warnings.
func WithLogger(logger *slog.Logger) FileOption {
	return func(s *FileStore) { s.logger = logger }
}

// NewFileStore creates a file-backed store for the given path.
// The file itself is created lazily on first use.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// EnsureStorage idempotently creates the data directory and, if the
// file is absent, an empty collection. Creation failures are fatal I/O
// errors; there is no recovery path.
func (s *FileStore) EnsureStorage() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s.write([]grievance.Grievance{})
}

// Load reads the persisted collection. Content that is not a
// well-formed JSON list loads as an empty collection: the condition is
// logged as a warning and otherwise swallowed. Accepted data loss on
// corruption, not a crash.
func (s *FileStore) Load(ctx context.Context) ([]grievance.Grievance, error) {
	if err := s.EnsureStorage(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var items []grievance.Grievance
	if err := json.Unmarshal(data, &items); err != nil {
		malformed := &MalformedStorageError{Path: s.path, Err: err}
		s.logger.WarnContext(ctx, "grievance file is malformed, treating as empty",
			slog.String("path", s.path),
			slog.String("error", malformed.Err.Error()))
		return []grievance.Grievance{}, nil
	}
	if items == nil {
		items = []grievance.Grievance{}
	}
	return items, nil
}

// Save serializes the full collection, replacing prior content
// entirely. The data is written to a temporary file in the same
// directory and atomically renamed over the target, so a crash
// mid-write cannot truncate the collection. The temporary file is
// removed on every failure path.
func (s *FileStore) Save(ctx context.Context, items []grievance.Grievance) error {
	if err := s.EnsureStorage(); err != nil {
		return err
	}
	return s.write(items)
}

func (s *FileStore) write(items []grievance.Grievance) error {
	if items == nil {
		items = []grievance.Grievance{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode grievances: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".grievances-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

// Add implements Store.
//
// The id is computed as max(existing)+1 within this cycle. Two
// concurrent processes can compute the same id; see the package docs.
func (s *FileStore) Add(ctx context.Context, title, description, author string) (grievance.Grievance, error) {
	title, description, author, err := normalizeFields(title, description, author)
	if err != nil {
		return grievance.Grievance{}, err
	}
	items, err := s.Load(ctx)
	if err != nil {
		return grievance.Grievance{}, err
	}
	g := grievance.New(grievance.NextID(items), title, description, author, s.now())
	items = append(items, g)
	if err := s.Save(ctx, items); err != nil {
		return grievance.Grievance{}, err
	}
	return g, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context, status grievance.Status, key grievance.SortKey) ([]grievance.Grievance, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return grievance.Sorted(grievance.Filter(items, status), key), nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, id int) (grievance.Grievance, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return grievance.Grievance{}, err
	}
	idx := grievance.FindIndex(items, id)
	if idx < 0 {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	return items[idx], nil
}

// Vote implements Store.
func (s *FileStore) Vote(ctx context.Context, id int, dir grievance.VoteDirection) (grievance.Grievance, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return grievance.Grievance{}, err
	}
	idx := grievance.FindIndex(items, id)
	if idx < 0 {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	switch dir {
	case grievance.VoteDown:
		items[idx].Downvotes++
	default:
		items[idx].Upvotes++
	}
	if err := s.Save(ctx, items); err != nil {
		return grievance.Grievance{}, err
	}
	return items[idx], nil
}

// Resolve implements Store.
func (s *FileStore) Resolve(ctx context.Context, id int) (grievance.Grievance, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return grievance.Grievance{}, err
	}
	idx := grievance.FindIndex(items, id)
	if idx < 0 {
		return grievance.Grievance{}, &NotFoundError{ID: id}
	}
	items[idx].Status = grievance.StatusResolved
	if err := s.Save(ctx, items); err != nil {
		return grievance.Grievance{}, err
	}
	return items[idx], nil
}

// Delete implements Store. Not-found is detected by comparing the
// collection length before and after filtering.
func (s *FileStore) Delete(ctx context.Context, id int) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]grievance.Grievance, 0, len(items))
	for _, g := range items {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(items) {
		return &NotFoundError{ID: id}
	}
	return s.Save(ctx, kept)
}

// Close implements Store. The file store holds no open resources.
func (s *FileStore) Close() error {
	return nil
}
