package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetName: the name cannot address a file under styles/ or
	// templates/ (separators, dots, traversal).
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal: a resolved path, symlinks included, leaves the
	// custom asset directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
