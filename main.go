package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/complykit/compmap/cmd"
	"github.com/complykit/compmap/internal/server"
	"github.com/complykit/compmap/internal/tui"
)

const version = "v0.1.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `compmap - Compliance mapping and gap analysis

Usage:
  compmap [command] [args...]

Commands:
  (default)   Interactive standards browser
  map         Map policy documents to standards and print the report
  gap         Check implemented controls against a required control list
  agent       Chat with the compliance assistant
  serve       Run the assistant as an A2A server

Examples:
  compmap                                  # Browse standards and coverage
  compmap map -format csv                  # Print report as CSV
  compmap map -output report.json          # Write report to a file
  compmap gap -standard SOC-2              # Gap check against all SOC-2 controls
  compmap gap -standard SOC-2 -controls CC6.1,CC6.2
  compmap agent "are we covered for SOC 2?"
  compmap serve --port 9000                # Start A2A server on custom port
  compmap serve --host 0.0.0.0             # Bind to all interfaces (INSECURE)

Environment:
  COMPMAP_STANDARDS_DIR   Directory of standard definitions (default: standards)
  COMPMAP_POLICIES_DIR    Directory of policy documents (default: policies)
  LLM_PROVIDER            LLM provider: gemini (default), vertex, or ollama
  LLM_MODEL               Model name (e.g., gemini-2.0-flash, llama3.2)
  GEMINI_API_KEY          Required for Gemini provider
  VERTEX_PROJECT          GCP project ID (required for Vertex AI)
  VERTEX_LOCATION         GCP region (required for Vertex AI, e.g., us-central1)
  OLLAMA_URL              Ollama server URL (default: http://localhost:11434)
  A2A_PORT                A2A server port (default: 8001)
  A2A_HOST                A2A server bind address (default: 127.0.0.1)

Keyboard (browser mode):
  enter   Control detail for the selected standard
  c       Coverage chart
  v       Severity chart
  p       Report preview
  e       Export menu
  t       Cycle color theme
  Ctrl+C  Quit
`)
}

func main() {
	if len(os.Args) < 2 {
		runBrowser()
		return
	}

	switch os.Args[1] {
	case "map":
		if err := cmd.RunMap(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "gap":
		if err := cmd.RunGap(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "agent":
		if err := cmd.RunAgent(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "serve":
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := serveCmd.Int("port", server.GetPort(), "Port for A2A server")
		host := serveCmd.String("host", server.GetHost(), "Host to bind (use 0.0.0.0 for all interfaces - INSECURE)")
		serveCmd.Parse(os.Args[2:])

		if err := cmd.RunServe(*port, *host); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "--help", "-h":
		printUsage()

	case "version", "--version":
		fmt.Println("compmap " + version)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runBrowser() {
	cfg := tui.Config{
		StandardsDir: cmd.DefaultStandardsDir(),
		PoliciesDir:  cmd.DefaultPoliciesDir(),
	}
	p := tea.NewProgram(tui.NewModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
