package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render one lesson file to HTML or JSON")
	fmt.Fprintln(w, "  build      Build the static course site")
	fmt.Fprintln(w, "  serve      Serve the course over HTTP")
	fmt.Fprintln(w, "  lessons    List lesson IDs by category")
	fmt.Fprintln(w, "  progress   Show or update local progress")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'coursemd help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log <mode>          Log mode: dev, prod, quiet")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printSiteUsage prints the renderer flags.
func printSiteUsage(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --style <name>        Stylesheet: default, dark, or one from --asset-path")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "      --highlight <name>    Code highlighting style (e.g. github, monokai)")
	fmt.Fprintln(w, "      --base-path <path>    URL prefix of every page (default /)")
	fmt.Fprintln(w, "      --videos <file>       Curated video JSON file")
	fmt.Fprintln(w, "      --sanitize            Sanitize compiled HTML")
	fmt.Fprintln(w, "      --no-sanitize         Do not sanitize compiled HTML")
	fmt.Fprintln(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd render <lesson.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one lesson. Its folder is the category, its parent the content root.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --json                Print the compiled lesson as JSON")
	fmt.Fprintln(w)
	printSiteUsage(w)
	printCommonUsage(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd build [content-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a static site: index.html, one page per category and per lesson.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  content-dir    Folder with one subfolder per category (default: content)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Site directory (default: site)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printSiteUsage(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd serve [content-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the course pages and the /api/lessons JSON API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default :8080)")
	fmt.Fprintln(w)
	printSiteUsage(w)
	printCommonUsage(w)
}

// printLessonsUsage prints usage for the lessons command.
func printLessonsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd lessons [content-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List lesson IDs, titles and files by category.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printProgressUsage prints usage for the progress command.
func printProgressUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: coursemd progress [status|complete|uncomplete|bookmark] [lesson-id] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show or update the local progress record.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions:")
	fmt.Fprintln(w, "  status                    Summary and checklist (default)")
	fmt.Fprintln(w, "  complete <id>             Mark a lesson complete")
	fmt.Fprintln(w, "  uncomplete <id>           Mark a lesson not complete")
	fmt.Fprintln(w, "  bookmark <id>             Toggle a bookmark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Storage:")
	fmt.Fprintln(w, "      --dir <dir>           Progress directory (default: user config dir)")
	fmt.Fprintln(w, "      --content <dir>       Content directory (default: content)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "lessons":
		printLessonsUsage(env.Stdout)
	case "progress":
		printProgressUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: coursemd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: coursemd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
