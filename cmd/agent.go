package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/complykit/compmap/internal/agent"
	"github.com/complykit/compmap/internal/llm"
)

// RunAgent runs the assistant - interactive chat if no args, one-shot if query provided
func RunAgent(args []string) error {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		provider := cfg.Provider
		if provider == "" {
			provider = "gemini"
		}
		if provider == "gemini" {
			return fmt.Errorf("LLM configuration error: %w\n\nFor Gemini, set:\n  export GEMINI_API_KEY=your-api-key\n\nFor Ollama (local), set:\n  export LLM_PROVIDER=ollama", err)
		}
		return fmt.Errorf("LLM configuration error: %w", err)
	}

	ctx := context.Background()

	fmt.Printf("Initializing compliance agent (%s/%s)...\n", cfg.Provider, cfg.Model)
	assistant, err := agent.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	// If args provided, run one-shot query
	if len(args) > 0 {
		query := strings.Join(args, " ")
		if query == "" {
			return fmt.Errorf("query cannot be empty")
		}
		fmt.Printf("Query: %s\n\n", query)
		response, err := assistant.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		fmt.Println(response)
		return nil
	}

	// Interactive mode - multi-turn chat on stdin
	fmt.Println("Interactive mode. Type a question, /clear to reset the session, /quit to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			assistant.ClearSession()
			fmt.Println("Session cleared.")
			continue
		}

		response, err := assistant.Chat(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(response)
		fmt.Println()
	}
	return scanner.Err()
}
