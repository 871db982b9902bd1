package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader serves the built-in stylesheets and template sets.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns a built-in stylesheet by name (without .css).
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile(path.Join("styles", name+".css"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet returns the page templates under templates/{name}/.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	return readTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile(path.Join(dir, file))
	})
}

// StyleNames lists the built-in stylesheets.
func (e *EmbeddedLoader) StyleNames() []string {
	return StyleNames()
}

// StyleNames lists the built-in stylesheet names, sorted.
func StyleNames() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	return cssNames(entries)
}

var (
	_ AssetLoader = (*EmbeddedLoader)(nil)
	_ StyleLister = (*EmbeddedLoader)(nil)
)
