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
)

// Planner converts the user's interests and profile into research tasks via
// a single structured-output call. A validation failure is fatal to the
// pipeline; there is no retry.
type Planner struct {
	client llm.Client
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.Planner = (*Planner)(nil)

// NewPlanner constructs the planner stage.
func NewPlanner(client llm.Client, cfg config.Config, logger *slog.Logger) *Planner {
	return &Planner{client: client, cfg: cfg, logger: logger, now: time.Now}
}

// Plan asks the model for at most max_tasks research tasks. If the model
// over-produces, the list is truncated to the first max_tasks entries.
func (p *Planner) Plan(ctx context.Context) ([]domain.ResearchTask, error) {
	system := prompts.Planner(p.cfg.Interests, p.cfg.UserProfile, p.now().Format("2006-01-02"), p.cfg.MaxTasks)

	var out plannerOutput
	if err := invokeStructured(ctx, p.client, p.cfg.Models.Planner, system, nil, &out); err != nil {
		return nil, fmt.Errorf("plan research tasks: %w", err)
	}

	tasks := out.ScoutTasks
	if len(tasks) > p.cfg.MaxTasks {
		if p.logger != nil {
			p.logger.Warn("planner over-produced tasks, truncating",
				"produced", len(tasks), "max_tasks", p.cfg.MaxTasks)
		}
		tasks = tasks[:p.cfg.MaxTasks]
	}

	if p.logger != nil {
		p.logger.Info("plan ready", "tasks", len(tasks))
	}
	return tasks, nil
}
