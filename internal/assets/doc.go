// Package assets provides the stylesheets and page templates of the course
// site, built in or supplied by a course directory.
//
//	AssetResolver             custom first, embedded for whatever is missing
//	    ├── FilesystemLoader  {basePath}/styles, {basePath}/templates
//	    └── EmbeddedLoader    go:embed copies of the defaults
//
// Each loader implements AssetLoader and StyleLister. A course can override a
// single style or template set and keep the built-in rest. Only "not found"
// falls back: a custom set that is incomplete, or a name that fails
// ValidateAssetName, is an error.
//
// Layout of a custom directory:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}/
//	        ├── layout.html      page shell, defines "layout"
//	        ├── index.html       course overview, defines "content"
//	        ├── category.html    lesson list, defines "content"
//	        └── lesson.html      lesson page, defines "content"
//
// Names are single path elements, and every file read from a custom
// directory must resolve, symlinks followed, inside basePath.
package assets
