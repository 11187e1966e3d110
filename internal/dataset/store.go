package dataset

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the current table snapshot loaded from a dataset file.
// Snapshot is safe for concurrent use with Reload.
type Store struct {
	path    string
	current atomic.Pointer[Table]
	logger  *zap.Logger
	onLoad  func(keys int)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report reloads.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoadHook sets a callback invoked after every successful load with the record count.
func WithLoadHook(fn func(keys int)) StoreOption {
	return func(s *Store) { s.onLoad = fn }
}

// NewStore loads path and returns a Store serving it. An empty path serves Default().
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if path == "" {
		s.publish(Default())
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the dataset file path, or "" for the built-in table.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current table.
func (s *Store) Snapshot() *Table {
	return s.current.Load()
}

// Reload re-reads the dataset file. On error the previous snapshot stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	t, err := Load(s.path)
	if err != nil {
		s.logger.Warn("dataset load failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.publish(t)
	s.logger.Info("dataset loaded", zap.String("path", s.path), zap.Int("records", t.Len()))
	return nil
}

func (s *Store) publish(t *Table) {
	s.current.Store(t)
	if s.onLoad != nil {
		s.onLoad(t.Len())
	}
}
