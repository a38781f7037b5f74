package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "version", "--version", "-v":
		fmt.Printf("library %s (commit %s)\n", Version, Commit)

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Personal book library API

Usage:
  library [command]

Commands:
  serve      Start the HTTP server (default)
  version    Print version information
  help       Show this help message

Configuration is read from environment variables, e.g. PORT, DATABASE_PATH,
CATALOG_BASE_URL, TASKS_ENABLED. See DESIGN.md for the full list.`)
}
