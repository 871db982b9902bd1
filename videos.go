package coursemd

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// MaxLessonVideos caps the videos shown at the end of a category.
const MaxLessonVideos = 3

// Video is a curated video recommendation.
type Video struct {
	ID          string   `json:"id"`
	YouTubeID   string   `json:"youtubeId"`
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	Duration    int      `json:"duration"` // Minutes
	Description string   `json:"description,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// VideoCatalog holds curated videos per category, in listing order.
// Build one at startup and share it; it is read-only after construction.
// A nil *VideoCatalog behaves as an empty catalog.
type VideoCatalog struct {
	byCategory map[string][]Video
	byID       map[string]Video
}

// EmptyVideoCatalog returns a catalog without videos.
func EmptyVideoCatalog() *VideoCatalog {
	return &VideoCatalog{byCategory: map[string][]Video{}, byID: map[string]Video{}}
}

// ParseVideoCatalog decodes a JSON object mapping category names to video lists.
// Entries without a YouTube ID are skipped.
func ParseVideoCatalog(data []byte) (*VideoCatalog, error) {
	var raw map[string][]Video
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVideoCatalog, err)
	}

	vc := EmptyVideoCatalog()
	for category, videos := range raw {
		list := make([]Video, 0, len(videos))
		for _, v := range videos {
			if v.YouTubeID == "" {
				continue
			}
			list = append(list, v)
			if v.ID != "" {
				if _, dup := vc.byID[v.ID]; !dup {
					vc.byID[v.ID] = v
				}
			}
		}
		vc.byCategory[category] = list
	}
	return vc, nil
}

// LoadVideoCatalog reads a video catalog file. An empty path gives an empty
// catalog. A missing or malformed file also gives an empty catalog, logged
// as a warning.
func LoadVideoCatalog(path string, logger *zap.Logger) *VideoCatalog {
	if path == "" {
		return EmptyVideoCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		logger.Warn("video catalog unavailable", zap.String("path", path), zap.Error(err))
		return EmptyVideoCatalog()
	}

	vc, err := ParseVideoCatalog(data)
	if err != nil {
		logger.Warn("video catalog ignored", zap.String("path", path), zap.Error(err))
		return EmptyVideoCatalog()
	}

	logger.Debug("video catalog loaded", zap.String("path", path), zap.Int("videos", vc.Len()))
	return vc
}

// ByCategory returns the videos of a category in listing order.
func (vc *VideoCatalog) ByCategory(category string) []Video {
	if vc == nil {
		return nil
	}
	return append([]Video(nil), vc.byCategory[category]...)
}

// ByID looks a video up by its catalog ID.
func (vc *VideoCatalog) ByID(id string) (Video, bool) {
	if vc == nil {
		return Video{}, false
	}
	v, ok := vc.byID[id]
	return v, ok
}

// Len returns the number of videos across categories.
func (vc *VideoCatalog) Len() int {
	if vc == nil {
		return 0
	}
	n := 0
	for _, list := range vc.byCategory {
		n += len(list)
	}
	return n
}

// ForLesson returns the videos shown below a lesson: up to MaxLessonVideos
// of its category when it is the last lesson of that category, else none.
func (vc *VideoCatalog) ForLesson(catalog *Catalog, id string) []Video {
	if vc == nil || catalog == nil || !catalog.IsLast(id) {
		return nil
	}
	meta, _ := catalog.Lesson(id)
	videos := vc.byCategory[meta.Category]
	if len(videos) > MaxLessonVideos {
		videos = videos[:MaxLessonVideos]
	}
	return append([]Video(nil), videos...)
}
