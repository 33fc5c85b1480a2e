package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/domain"
	"github.com/RyanWillie/Thinkle/internal/llm"
	"github.com/RyanWillie/Thinkle/internal/ports"
	"github.com/RyanWillie/Thinkle/internal/prompts"
	"github.com/RyanWillie/Thinkle/internal/tools"
)

// Scout investigates one research task through the bounded tool loop and
// returns a small set of scored stories. Each Investigate call owns its own
// transcript; concurrent calls share nothing mutable.
type Scout struct {
	client   llm.Client
	registry *tools.Registry
	cfg      config.Config
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.Scout = (*Scout)(nil)

// NewScout constructs the scout stage over the given tool registry.
func NewScout(client llm.Client, registry *tools.Registry, cfg config.Config, logger *slog.Logger) *Scout {
	return &Scout{client: client, registry: registry, cfg: cfg, logger: logger, now: time.Now}
}

// Investigate runs the tool loop for the task. Every returned story carries
// the task's topic: the stage enforces traceability rather than trusting
// the model to echo it.
func (s *Scout) Investigate(ctx context.Context, task domain.ResearchTask) ([]domain.NewsStory, error) {
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("scout input: %w", err)
	}

	system := prompts.Scout(s.now().Format("2006-01-02"), task.Topic, task.AdditionalInfo)
	loop := &toolLoop{
		client:   s.client,
		registry: s.registry,
		model:    s.cfg.Models.Scout,
		logger:   s.logger,
	}

	var out scoutOutput
	if err := loop.run(ctx, system, "Begin your investigation of the assigned topic now.", &out); err != nil {
		return nil, fmt.Errorf("investigate %q: %w", task.Topic, err)
	}

	stories := out.NewsStories
	for i := range stories {
		stories[i].Topic = task.Topic
	}

	if s.logger != nil {
		s.logger.Info("scout finished", "topic", task.Topic, "stories", len(stories))
	}
	return stories, nil
}
