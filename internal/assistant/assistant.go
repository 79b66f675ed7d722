// Package assistant answers free-form questions about the workspace by
// assembling a snapshot of tasks, goals, and detected risks into a prompt
// and sending it to the Anthropic Messages API.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/harborworks/foresight/internal/config"
	"github.com/harborworks/foresight/internal/insight"
	"github.com/harborworks/foresight/internal/store"
)

const maxContextTasks = 50

type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

func (u Usage) TotalTokens() int64 { return u.InputTokens + u.OutputTokens }

type Answer struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

type Assistant struct {
	client anthropic.Client
	store  store.Store
	cfg    config.AssistantConfig
	logger *slog.Logger
}

// New returns nil when no API key is configured; callers treat a nil
// assistant as the feature being disabled.
func New(s store.Store, cfg config.AssistantConfig, logger *slog.Logger) *Assistant {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	return &Assistant{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		store:  s,
		cfg:    cfg,
		logger: logger,
	}
}

// Ask builds a workspace snapshot, sends the question, and returns the
// model's answer.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	now := time.Now()
	tasks, err := a.store.GetActiveTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active tasks: %w", err)
	}
	goals, err := a.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	risks := insight.DetectRisks(tasks, now)

	systemPrompt, userPrompt := buildPrompts(question, tasks, goals, risks, now)

	a.logger.Info("assistant request", "model", a.cfg.Model,
		"tasks", len(tasks), "goals", len(goals), "risks", len(risks))

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.cfg.Model),
		MaxTokens: int64(a.cfg.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	usage := Usage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			a.logger.Info("assistant response", "size", len(block.Text),
				"tokens_in", usage.InputTokens, "tokens_out", usage.OutputTokens)
			return &Answer{Text: block.Text, Model: a.cfg.Model, Usage: usage}, nil
		}
	}
	return nil, fmt.Errorf("no text content in response")
}

func buildPrompts(question string, tasks []*store.Task, goals []*store.Goal, risks []insight.RiskEntry, now time.Time) (string, string) {
	systemPrompt := `You are a planning assistant for a team workspace.
Answer questions using only the workspace snapshot provided. Be concise
and concrete: name tasks and people, cite due dates, and quantify where
the snapshot allows it. If the snapshot does not contain the answer, say
so instead of guessing.`

	var b strings.Builder
	fmt.Fprintf(&b, "Snapshot taken %s.\n", now.Format("2006-01-02 15:04 MST"))

	b.WriteString("\nActive tasks:\n")
	if len(tasks) == 0 {
		b.WriteString("none\n")
	}
	for i, t := range tasks {
		if i >= maxContextTasks {
			fmt.Fprintf(&b, "... and %d more\n", len(tasks)-maxContextTasks)
			break
		}
		b.WriteString(taskLine(t, now))
	}

	b.WriteString("\nGoals:\n")
	if len(goals) == 0 {
		b.WriteString("none\n")
	}
	for _, g := range goals {
		fmt.Fprintf(&b, "- %s (%d%% complete, due %s)\n",
			g.Title, g.Progress, g.DueDate.Format("2006-01-02"))
	}

	b.WriteString("\nDetected risks:\n")
	if len(risks) == 0 {
		b.WriteString("none\n")
	}
	for _, r := range risks {
		fmt.Fprintf(&b, "- %s [%s, score %d]: %s\n", r.Title, r.Severity, r.Score, strings.Join(r.Reasons, "; "))
	}

	b.WriteString("\nQuestion: " + question + "\n")
	return systemPrompt, b.String()
}

func taskLine(t *store.Task, now time.Time) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s [%s, %s priority", t.Title, t.Status, t.Priority))
	if t.Progress != nil {
		parts[len(parts)-1] += fmt.Sprintf(", %d%% done", *t.Progress)
	}
	parts[len(parts)-1] += "]"
	if t.DueDate != nil {
		if t.DueDate.Before(now) {
			parts = append(parts, "OVERDUE since "+t.DueDate.Format("2006-01-02"))
		} else {
			parts = append(parts, "due "+t.DueDate.Format("2006-01-02"))
		}
	}
	if t.AssignedTo != nil {
		parts = append(parts, "assignee "+t.AssignedTo.String())
	}
	return "- " + strings.Join(parts, ", ") + "\n"
}
