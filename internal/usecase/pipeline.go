package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/RyanWillie/Thinkle/internal/domain"
	"github.com/RyanWillie/Thinkle/internal/ports"
)

// PipelineDeps wires the four stages into the orchestration pipeline.
type PipelineDeps struct {
	Planner   ports.Planner
	Scout     ports.Scout
	Evaluator ports.Evaluator
	Writer    ports.Writer
	Logger    *slog.Logger
}

// Pipeline sequences planner, parallel scouts, evaluator, and writer over a
// single run's state. Any stage failure aborts the run; there is no partial
// report.
type Pipeline struct {
	planner   ports.Planner
	scout     ports.Scout
	evaluator ports.Evaluator
	writer    ports.Writer
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		planner:   deps.Planner,
		scout:     deps.Scout,
		evaluator: deps.Evaluator,
		writer:    deps.Writer,
		logger:    deps.Logger,
	}
}

// Run executes one newsletter generation run and returns the report plus
// the final curated story set.
func (p *Pipeline) Run(ctx context.Context) (domain.RunResult, error) {
	runID := uuid.NewString()
	p.info("pipeline start", "run_id", runID)

	tasks, err := p.planner.Plan(ctx)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("planner stage: %w", err)
	}
	p.info("scout fan-out", "run_id", runID, "tasks", len(tasks))

	stories, err := p.scatterScouts(ctx, tasks)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("scout stage: %w", err)
	}
	p.info("scout fan-in", "run_id", runID, "stories", len(stories))

	curated, err := p.evaluator.Curate(ctx, stories)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("evaluator stage: %w", err)
	}

	report, err := p.writer.Compose(ctx, curated)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("writer stage: %w", err)
	}

	p.info("pipeline done", "run_id", runID, "curated", len(curated))
	return domain.RunResult{RunID: runID, Report: report, Stories: curated}, nil
}

// scatterScouts runs one scout instance per task concurrently and unions
// their stories. The merge is additive and order-independent: results are
// appended as instances finish, never keyed by arrival order.
func (p *Pipeline) scatterScouts(ctx context.Context, tasks []domain.ResearchTask) ([]domain.NewsStory, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		merged  []domain.NewsStory
		firstEr error
	)

	for _, task := range tasks {
		wg.Add(1)
		go func(task domain.ResearchTask) {
			defer wg.Done()
			stories, err := p.scout.Investigate(ctx, task)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstEr == nil {
					firstEr = fmt.Errorf("scout %q: %w", task.Topic, err)
				}
				return
			}
			merged = append(merged, stories...)
		}(task)
	}
	wg.Wait()

	if firstEr != nil {
		return nil, firstEr
	}
	return merged, nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
