package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/domain"
	"github.com/RyanWillie/Thinkle/internal/llm"
	"github.com/RyanWillie/Thinkle/internal/ports"
	"github.com/RyanWillie/Thinkle/internal/prompts"
)

// Writer transforms the curated story set into the final newsletter report
// with a single structured-output call. Failure is fatal to the pipeline.
type Writer struct {
	client llm.Client
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.Writer = (*Writer)(nil)

// NewWriter constructs the writer stage.
func NewWriter(client llm.Client, cfg config.Config, logger *slog.Logger) *Writer {
	return &Writer{client: client, cfg: cfg, logger: logger, now: time.Now}
}

// Compose renders the curated stories into one Markdown briefing.
func (w *Writer) Compose(ctx context.Context, stories []domain.NewsStory) (string, error) {
	system := prompts.Writer(
		w.cfg.UserProfile,
		w.cfg.Newsletter.Tone,
		w.cfg.Newsletter.IncludeOpinions,
		w.now().Format("2006-01-02"),
	)

	payload, err := json.Marshal(map[string]any{"NewsStories": stories})
	if err != nil {
		return "", fmt.Errorf("marshal stories: %w", err)
	}
	messages := []llm.Message{{Role: llm.RoleUser, Content: string(payload)}}

	var out writerOutput
	if err := invokeStructured(ctx, w.client, w.cfg.Models.Writer, system, messages, &out); err != nil {
		return "", fmt.Errorf("compose report: %w", err)
	}

	if w.logger != nil {
		w.logger.Info("report composed", "stories", len(stories), "length", len(out.Report))
	}
	return out.Report, nil
}
