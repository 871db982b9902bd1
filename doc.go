// Package coursemd compiles Markdown lessons with interactive components
// into structured, renderable content for a web development course.
//
// # Quick Start
//
// Load the course catalog, create a renderer and render a lesson page:
//
//	content := os.DirFS("content")
//	catalog, err := coursemd.LoadCatalog(content, coursemd.DefaultCategories)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := coursemd.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lesson, err := r.RenderLesson(ctx, content, catalog, "css-box-model")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, err := r.RenderPage(catalog, lesson)
//
// # Lesson Components
//
// Lessons are Markdown files with fenced directives:
//
//	:::preview height=200
//	```html
//	<p class="note">Hello</p>
//	```
//	```css
//	.note { color: teal; }
//	```
//	:::
//
//	:::practice title="Center the box"
//	Use flexbox to center the child.
//	```html
//	<div class="parent"><div class="child"></div></div>
//	```
//	:::
//
// A preview renders its HTML, CSS and JavaScript in a sandboxed iframe. A
// practice block becomes an exercise panel with instructions, an editable
// starter snippet and a live result.
//
// # Compilation Pipeline
//
//  1. Preprocessing (BOM and line endings)
//  2. Front matter split (YAML or TOML)
//  3. Directive extraction into placeholder tags
//  4. Markdown to HTML via Goldmark (GFM, highlighted code blocks with copy buttons)
//  5. Optional sanitizing (WithSanitize)
//  6. Splitting at placeholders into literal, preview and practice segments
//
// Malformed input degrades: unmatched directives stay literal text and
// corrupt placeholders are dropped with a warning.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := coursemd.NewRenderer(
//	    coursemd.WithHighlightStyle("monokai"),
//	    coursemd.WithStyle("dark"),
//	    coursemd.WithBasePath("/courses/web/"),
//	    coursemd.WithVideos(coursemd.LoadVideoCatalog("videos.json", logger)),
//	    coursemd.WithLogger(logger),
//	)
//
// # Progress
//
// ProgressTracker records completed and bookmarked lessons in a
// ProgressStore (MemoryStore or FileStore).
package coursemd
