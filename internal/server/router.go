package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coursemd "github.com/alnah/go-coursemd"
)

// Config wires a router to a course.
type Config struct {
	Renderer     *coursemd.Renderer
	Content      fs.FS    // Root holding one folder per category
	Categories   []string // Empty = coursemd.DefaultCategories
	Logger       *zap.Logger
	AllowOrigins []string // CORS origins of the JSON API (empty = any)
}

// lessonList is the JSON body of GET /api/lessons/:category.
type lessonList struct {
	Category string                `json:"category"`
	Title    string                `json:"title"`
	Lessons  []coursemd.LessonMeta `json:"lessons"`
}

type handler struct {
	renderer   *coursemd.Renderer
	content    fs.FS
	categories []string
	logger     *zap.Logger
}

// NewRouter builds the gin engine serving the course pages under the
// renderer's base path, plus /healthz at the root.
// The catalog is rescanned on every request, so lesson files can be edited
// while the server runs.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{
		renderer:   cfg.Renderer,
		content:    cfg.Content,
		categories: cfg.Categories,
		logger:     logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS(cfg.AllowOrigins))

	router.GET("/healthz", h.healthz)

	site := router.Group(strings.TrimSuffix(cfg.Renderer.BasePath(), "/"))
	site.GET("/", h.index)
	site.GET("/"+coursemd.StylesheetPath, h.stylesheet)
	site.GET("/:category", h.category)
	site.GET("/:category/:lessonId", h.lesson)

	api := site.Group("/api")
	api.GET("/lessons/:category", h.apiLessons)
	api.GET("/lessons/:category/:lessonId", h.apiLesson)

	router.NoRoute(h.notFound)

	return router
}

func (h *handler) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *handler) index(c *gin.Context) {
	catalog, err := h.catalog()
	if err != nil {
		h.pageError(c, err)
		return
	}
	body, err := h.renderer.RenderIndex(catalog)
	if err != nil {
		h.pageError(c, err)
		return
	}
	respondHTML(c, body)
}

func (h *handler) stylesheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(h.renderer.Stylesheet()))
}

func (h *handler) category(c *gin.Context) {
	catalog, err := h.catalog()
	if err != nil {
		h.pageError(c, err)
		return
	}
	body, err := h.renderer.RenderCategory(catalog, c.Param("category"))
	if err != nil {
		h.pageError(c, err)
		return
	}
	respondHTML(c, body)
}

func (h *handler) lesson(c *gin.Context) {
	catalog, lesson, err := h.loadLesson(c)
	if err != nil {
		h.pageError(c, err)
		return
	}
	body, err := h.renderer.RenderPage(catalog, lesson)
	if err != nil {
		h.pageError(c, err)
		return
	}
	respondHTML(c, body)
}

func (h *handler) apiLessons(c *gin.Context) {
	catalog, err := h.catalog()
	if err != nil {
		h.apiError(c, err)
		return
	}
	category := c.Param("category")
	lessons, err := catalog.Lessons(category)
	if err != nil {
		h.apiError(c, err)
		return
	}
	if lessons == nil {
		lessons = []coursemd.LessonMeta{}
	}
	c.JSON(http.StatusOK, lessonList{
		Category: category,
		Title:    coursemd.CategoryTitle(category),
		Lessons:  lessons,
	})
}

func (h *handler) apiLesson(c *gin.Context) {
	_, lesson, err := h.loadLesson(c)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *handler) notFound(c *gin.Context) {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		respondError(c, http.StatusNotFound, CodeNotFound, errors.New("no such endpoint"))
		return
	}
	respondNotFoundPage(c)
}

func (h *handler) catalog() (*coursemd.Catalog, error) {
	return coursemd.LoadCatalog(h.content, h.categories)
}

// loadLesson compiles the lesson named by the route, which must belong to
// the route's category.
func (h *handler) loadLesson(c *gin.Context) (*coursemd.Catalog, *coursemd.Lesson, error) {
	catalog, err := h.catalog()
	if err != nil {
		return nil, nil, err
	}

	category, id := c.Param("category"), c.Param("lessonId")
	if !catalog.HasCategory(category) {
		return nil, nil, fmt.Errorf("%w: %s", coursemd.ErrCategoryNotFound, category)
	}
	if meta, ok := catalog.Lesson(id); !ok || meta.Category != category {
		return nil, nil, fmt.Errorf("%w: %s/%s", coursemd.ErrLessonNotFound, category, id)
	}

	lesson, err := h.renderer.RenderLesson(c.Request.Context(), h.content, catalog, id)
	if err != nil {
		return nil, nil, err
	}
	return catalog, lesson, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, coursemd.ErrCategoryNotFound) || errors.Is(err, coursemd.ErrLessonNotFound)
}

func (h *handler) pageError(c *gin.Context, err error) {
	if isNotFound(err) {
		respondNotFoundPage(c)
		return
	}
	h.logger.Error("page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal server error")
}

func (h *handler) apiError(c *gin.Context, err error) {
	if isNotFound(err) {
		respondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	h.logger.Error("api call failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	respondError(c, http.StatusInternalServerError, CodeInternal, errors.New("internal server error"))
}
