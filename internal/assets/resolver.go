package assets

import (
	"errors"
	"slices"
)

// AssetResolver serves a course's own assets first and the embedded ones for
// anything the course directory does not provide.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without a custom directory
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only; an unusable one returns ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadStyle loads a stylesheet, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplateSet loads a template set, custom directory first.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return withFallback(r, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// StyleNames lists every loadable style once, sorted.
func (r *AssetResolver) StyleNames() []string {
	names := r.embedded.StyleNames()
	if r.custom != nil {
		names = append(names, r.custom.StyleNames()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// withFallback runs load on the custom loader, then on the embedded one when
// the custom directory lacks the asset. Other custom errors (invalid name,
// incomplete set, read failure) are returned as is.
func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom != nil {
		v, err := load(r.custom)
		if err == nil || !isNotFoundError(err) {
			return v, err
		}
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// AvailableStyles lists the styles a renderer using basePath can load. An
// unusable basePath lists the embedded styles.
func AvailableStyles(basePath string) []string {
	r, err := NewAssetResolver(basePath)
	if err != nil {
		return StyleNames()
	}
	return r.StyleNames()
}

var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ StyleLister = (*AssetResolver)(nil)
)
