// Package pipeline implements the lesson Markdown pipeline.
//
// A lesson flows through these stages:
//   - Preprocessing (byte order mark, line endings)
//   - Front matter split (YAML or TOML header)
//   - Directive extraction (:::practice and :::preview blocks become
//     placeholder tags carrying a base64 JSON payload)
//   - Markdown to HTML conversion via Goldmark, with decorated code blocks
//   - Optional sanitizing via bluemonday
//   - Splitting the HTML at placeholder tags into ordered segments
//
// Page assembly (templates, navigation, videos) lives in the root
// coursemd package. Keeping it out of here leaves the pipeline a set of
// string transforms with no I/O.
package pipeline
