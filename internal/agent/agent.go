// Package agent implements the compliance assistant built on ADK
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/complykit/compmap/internal/llm"
)

const (
	// SystemInstruction for the compliance assistant
	SystemInstruction = `You are a compliance analyst assistant working with a catalog of compliance standards and organizational policy documents.

CRITICAL BEHAVIOR - Be action-oriented:
- When a user mentions ANY standard, control, or policy - IMMEDIATELY look it up
- Do NOT ask clarifying questions if you can make a reasonable assumption
- When in doubt, USE YOUR TOOLS FIRST, then explain the results
- If a lookup returns nothing, say so briefly and suggest alternatives

Examples of how to handle queries:
- "what standards do we track?" → list_standards() immediately
- "explain CC6.1" → get_control_details(standard_id="SOC-2", control_id="CC6.1") immediately
- "what does the access policy cover?" → map_policy(policy_name="access-control") immediately
- "are we covered for SOC 2?" → coverage_report() immediately
- "do we have gaps against CC6.1 and CC6.2?" → gap_check immediately

Your compliance tools:
- list_standards: List all standards in the catalog
- get_control_details: Get details about a specific control
- map_policy: Show which standards and controls a policy references
- coverage_report: Summarize control coverage across all policies
- gap_check: Compare implemented controls against a required control list
- export_report: Export the compliance report to JSON/CSV/Markdown

When presenting results:
- Lead with the data, keep explanations brief
- Quote coverage percentages and name missing controls explicitly
- Highlight critical and high severity controls that are not covered
- Use markdown for clarity

Only redirect to compliance topics if the query is completely unrelated to standards, controls, or policies.`
)

// Assistant wraps the ADK agent with compliance-specific functionality
type Assistant struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	// Session tracking for multi-turn conversations
	userID     string
	sessionID  string
	hasSession bool
}

// New creates an assistant using default LLM config from environment
func New(ctx context.Context) (*Assistant, error) {
	cfg := llm.ConfigFromEnv()
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an assistant with the specified LLM config
func NewWithConfig(ctx context.Context, cfg llm.Config) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM model: %w", err)
	}

	tools, err := CreateTools()
	if err != nil {
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}

	complianceAgent, err := llmagent.New(llmagent.Config{
		Name:        "compliance_agent",
		Description: "Compliance analyst assistant for mapping policies to standards and finding control gaps",
		Model:       model,
		Instruction: SystemInstruction,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionSvc := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        "compmap",
		Agent:          complianceAgent,
		SessionService: sessionSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Assistant{
		agent:          complianceAgent,
		runner:         r,
		sessionService: sessionSvc,
	}, nil
}

// Agent returns the underlying ADK agent for use with launchers
func (a *Assistant) Agent() agent.Agent {
	return a.agent
}

// Query sends a one-shot query to the agent and returns the response
func (a *Assistant) Query(ctx context.Context, query string) (string, error) {
	sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   "compmap",
		UserID:    "user",
		SessionID: "session",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return a.run(ctx, sessionResp.Session.UserID(), sessionResp.Session.ID(), query)
}

// Chat sends a query to the agent using a persistent session for multi-turn
// conversations. The first call creates a session, subsequent calls reuse it.
func (a *Assistant) Chat(ctx context.Context, query string) (string, error) {
	if !a.hasSession {
		sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
			AppName:   "compmap",
			UserID:    "chat-user",
			SessionID: fmt.Sprintf("chat-%d", time.Now().UnixNano()),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create session: %w", err)
		}
		a.userID = sessionResp.Session.UserID()
		a.sessionID = sessionResp.Session.ID()
		a.hasSession = true
	}

	return a.run(ctx, a.userID, a.sessionID, query)
}

func (a *Assistant) run(ctx context.Context, userID, sessionID, query string) (string, error) {
	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	var response strings.Builder
	for event, err := range a.runner.Run(ctx, userID, sessionID, userMsg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	return response.String(), nil
}

// ClearSession clears the current chat session, starting fresh on next Chat() call
func (a *Assistant) ClearSession() {
	a.hasSession = false
	a.userID = ""
	a.sessionID = ""
}
