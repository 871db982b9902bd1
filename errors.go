package coursemd

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateParse  = errors.New("page template parsing failed")
	ErrRender         = errors.New("page rendering failed")

	// Catalog errors.
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrReadContent      = errors.New("failed to read course content")

	// Video catalog errors.
	ErrInvalidVideoCatalog = errors.New("invalid video catalog")

	// Progress errors.
	ErrEmptyLessonID = errors.New("lesson ID cannot be empty")
	ErrProgressWrite = errors.New("failed to save progress")

	// Highlighting errors.
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidAssetName      = errors.New("invalid asset name")
	ErrAssetRead             = errors.New("failed to read asset")
)
