// Package server provides the A2A server for the compliance assistant
package server

import (
	"context"
	"fmt"
	"os"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/web"
	"google.golang.org/adk/cmd/launcher/web/a2a"
	"google.golang.org/adk/session"

	"github.com/complykit/compmap/internal/agent"
	"github.com/complykit/compmap/internal/llm"
)

// A2AConfig holds configuration for the A2A server
type A2AConfig struct {
	Port      int
	Host      string
	LLMConfig llm.Config
}

// ConfigFromEnv creates an A2AConfig from environment variables
func ConfigFromEnv() A2AConfig {
	return A2AConfig{
		Port:      GetPort(),
		Host:      GetHost(),
		LLMConfig: llm.ConfigFromEnv(),
	}
}

// RunA2AServer starts the compliance assistant as an A2A server
func RunA2AServer(ctx context.Context, cfg A2AConfig) error {
	if err := cfg.LLMConfig.Validate(); err != nil {
		return fmt.Errorf("invalid LLM config: %w", err)
	}

	assistant, err := agent.NewWithConfig(ctx, cfg.LLMConfig)
	if err != nil {
		return fmt.Errorf("failed to create compliance agent: %w", err)
	}

	adkAgent := assistant.Agent()

	webLauncher := web.NewLauncher(a2a.NewLauncher())

	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}

	args := []string{
		"--port", fmt.Sprintf("%d", cfg.Port),
		"--host", host,
	}
	if _, err := webLauncher.Parse(args); err != nil {
		return fmt.Errorf("failed to parse launcher args: %w", err)
	}

	fmt.Printf("Compliance A2A server starting on %s:%d\n", host, cfg.Port)
	fmt.Printf("Agent card: http://localhost:%d/.well-known/agent-card.json\n", cfg.Port)
	fmt.Printf("A2A endpoint: http://localhost:%d/a2a\n", cfg.Port)
	fmt.Printf("LLM Provider: %s (%s)\n", cfg.LLMConfig.Provider, cfg.LLMConfig.Model)
	fmt.Println()

	launcherConfig := &launcher.Config{
		AgentLoader:    adkagent.NewSingleLoader(adkAgent),
		SessionService: session.InMemoryService(),
	}

	return webLauncher.Run(ctx, launcherConfig)
}

// GetHost returns the bind address from environment or default.
// The default is loopback only; binding 0.0.0.0 exposes the server
// to all interfaces.
func GetHost() string {
	if host := os.Getenv("A2A_HOST"); host != "" {
		return host
	}
	return "127.0.0.1"
}

// GetPort returns the server port from environment or default
func GetPort() int {
	portStr := os.Getenv("A2A_PORT")
	if portStr == "" {
		return 8001
	}
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	if port <= 0 {
		return 8001
	}
	return port
}
