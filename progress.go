package coursemd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-coursemd/internal/fileutil"
)

// ProgressKey is the key the progress record is stored under.
const ProgressKey = "coursemd-progress"

// Progress is the learner progress record.
type Progress struct {
	CompletedLessons   []string `json:"completedLessons"`
	BookmarkedLessons  []string `json:"bookmarkedLessons"`
	LastAccessedLesson string   `json:"lastAccessedLesson,omitempty"`
	ProgressPercentage int      `json:"progressPercentage"`
}

// ProgressStats summarizes a Progress record.
type ProgressStats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	Bookmarked int `json:"bookmarked"`
}

// ProgressStore persists serialized records by key.
// Get returns nil data and a nil error when nothing is stored under key.
type ProgressStore interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// MemoryStore is a ProgressStore held in memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get implements ProgressStore.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data[key]), nil
}

// Set implements ProgressStore.
func (s *MemoryStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)
	return nil
}

// FileStore keeps each key in "<Dir>/<key>.json", written atomically.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// Get implements ProgressStore. A missing file reads as nothing stored.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Set implements ProgressStore.
func (s *FileStore) Set(key string, data []byte) error {
	return fileutil.WriteFileAtomic(s.path(key), data, 0o644)
}

// ProgressTracker records completed and bookmarked lessons.
// The record is read once at construction and written after every change.
// Safe for concurrent use.
type ProgressTracker struct {
	mu       sync.Mutex
	store    ProgressStore
	total    int
	logger   *zap.Logger
	progress Progress
}

// NewProgressTracker loads the record from store. total is the number of
// lessons in the course and drives the percentage. An unreadable record
// starts an empty one and is logged.
func NewProgressTracker(store ProgressStore, total int, logger *zap.Logger) *ProgressTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &ProgressTracker{store: store, total: max(total, 0), logger: logger}
	t.progress = t.load()
	return t
}

func (t *ProgressTracker) load() Progress {
	empty := Progress{CompletedLessons: []string{}, BookmarkedLessons: []string{}}

	data, err := t.store.Get(ProgressKey)
	if err != nil {
		t.logger.Warn("progress unreadable, starting fresh", zap.Error(err))
		return empty
	}
	if len(data) == 0 {
		return empty
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		t.logger.Warn("progress corrupt, starting fresh", zap.Error(err))
		return empty
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	if p.BookmarkedLessons == nil {
		p.BookmarkedLessons = []string{}
	}
	p.ProgressPercentage = percentage(len(p.CompletedLessons), t.total)
	return p
}

// update applies change to a copy of the record and commits the copy only
// once it is stored. Caller holds t.mu.
func (t *ProgressTracker) update(change func(p *Progress)) error {
	next := t.progress.clone()
	change(&next)
	next.ProgressPercentage = percentage(len(next.CompletedLessons), t.total)

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProgressWrite, err)
	}
	if err := t.store.Set(ProgressKey, data); err != nil {
		return fmt.Errorf("%w: %v", ErrProgressWrite, err)
	}
	t.progress = next
	return nil
}

func (p Progress) clone() Progress {
	p.CompletedLessons = slices.Clone(p.CompletedLessons)
	p.BookmarkedLessons = slices.Clone(p.BookmarkedLessons)
	return p
}

// percentage returns round(completed/total*100), 0 for an empty course.
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Progress returns a copy of the current record.
func (t *ProgressTracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress.clone()
}

// IsCompleted reports whether id is marked complete.
func (t *ProgressTracker) IsCompleted(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.progress.CompletedLessons, id)
}

// IsBookmarked reports whether id is bookmarked.
func (t *ProgressTracker) IsBookmarked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.progress.BookmarkedLessons, id)
}

// Complete marks id complete and makes it the last accessed lesson.
// Completing a completed lesson changes nothing.
func (t *ProgressTracker) Complete(id string) error {
	if id == "" {
		return ErrEmptyLessonID
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.progress.CompletedLessons, id) {
		return nil
	}
	return t.update(func(p *Progress) {
		p.CompletedLessons = append(p.CompletedLessons, id)
		p.LastAccessedLesson = id
	})
}

// Uncomplete removes id from the completed lessons.
func (t *ProgressTracker) Uncomplete(id string) error {
	if id == "" {
		return ErrEmptyLessonID
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.update(func(p *Progress) {
		p.CompletedLessons = slices.DeleteFunc(p.CompletedLessons, func(s string) bool { return s == id })
	})
}

// ToggleBookmark flips the bookmark on id and reports whether it is now set.
func (t *ProgressTracker) ToggleBookmark(id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyLessonID
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	marked := !slices.Contains(t.progress.BookmarkedLessons, id)
	err := t.update(func(p *Progress) {
		if marked {
			p.BookmarkedLessons = append(p.BookmarkedLessons, id)
		} else {
			p.BookmarkedLessons = slices.DeleteFunc(p.BookmarkedLessons, func(s string) bool { return s == id })
		}
	})
	if err != nil {
		return !marked, err
	}
	return marked, nil
}

// SetLastAccessed records id as the last lesson opened.
func (t *ProgressTracker) SetLastAccessed(id string) error {
	if id == "" {
		return ErrEmptyLessonID
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.update(func(p *Progress) {
		p.LastAccessedLesson = id
	})
}

// Stats summarizes the record against the course size.
func (t *ProgressTracker) Stats() ProgressStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	completed := len(t.progress.CompletedLessons)
	return ProgressStats{
		Completed:  completed,
		Total:      t.total,
		Percentage: percentage(completed, t.total),
		Bookmarked: len(t.progress.BookmarkedLessons),
	}
}
