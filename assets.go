package coursemd

import (
	"errors"

	"github.com/alnah/go-coursemd/internal/assets"
)

// Names of the built-in style and template set.
const (
	DefaultStyle       = assets.DefaultStyleName
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader supplies the site stylesheet and page templates by name.
// NewAssetLoader covers directories on disk; implement it for other backends.
type AssetLoader interface {
	// LoadStyle returns the CSS of a style (name without .css).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the page templates of a set.
	// Returns ErrTemplateSetNotFound or ErrIncompleteTemplateSet.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources of the site pages.
// Layout defines "layout" and calls {{template "content" .}}; Index,
// Category and Lesson each define "content".
type TemplateSet = assets.TemplateSet

// NewAssetLoader returns a loader reading styles/{name}.css and
// templates/{name}/*.html under basePath, falling back to the built-in
// assets for anything basePath lacks. An empty basePath serves the built-in
// assets only.
//
// Returns ErrInvalidAssetPath if basePath is not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// AvailableStyles lists the style names a renderer using WithAssetPath(basePath)
// can load, sorted.
func AvailableStyles(basePath string) []string {
	return assets.AvailableStyles(basePath)
}

// assetLoaderAdapter translates internal errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	css, err := a.resolver.LoadStyle(name)
	return css, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return ts, nil
}

// StyleNames lists the styles the loader can serve.
func (a *assetLoaderAdapter) StyleNames() []string {
	return a.resolver.StyleNames()
}

// assetErrors maps internal asset errors to public ones, first match wins.
// Traversal precedes read so a symlink escape reports as a bad asset path.
var assetErrors = []struct {
	internal, public error
}{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	{assets.ErrIncompleteTemplateSet, ErrIncompleteTemplateSet},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
	{assets.ErrInvalidAssetName, ErrInvalidAssetName},
	{assets.ErrAssetRead, ErrAssetRead},
}

func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range assetErrors {
		if errors.Is(err, m.internal) {
			return &assetError{public: m.public, message: err.Error()}
		}
	}
	return err
}

// assetError keeps the internal message and matches only the public
// sentinel, so internal packages never leak through errors.As or errors.Is.
type assetError struct {
	public  error
	message string
}

func (e *assetError) Error() string { return e.message }
func (e *assetError) Unwrap() error { return e.public }

var _ AssetLoader = (*assetLoaderAdapter)(nil)
