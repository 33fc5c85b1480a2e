package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/domain"
	"github.com/RyanWillie/Thinkle/internal/llm"
	"github.com/RyanWillie/Thinkle/internal/ports"
	"github.com/RyanWillie/Thinkle/internal/prompts"
)

const (
	// maxFollowupCycles bounds how many extra scouting rounds the
	// evaluator may commission. With one evaluation pass after the last
	// round, the stage performs at most maxFollowupCycles+1 passes.
	maxFollowupCycles = 1
	// maxInvestigatorTasks bounds how many follow-up tasks a single pass
	// may dispatch. Extra tasks proposed by the model are dropped.
	maxInvestigatorTasks = 1
)

type routeKind int

const (
	routeTerminate routeKind = iota
	routeDispatch
)

// route is the evaluator's explicit branch decision after a pass.
type route struct {
	kind  routeKind
	tasks []domain.ResearchTask
}

// Evaluator consolidates scout findings, curates the story set, and decides
// whether one more round of scouting is warranted.
type Evaluator struct {
	client llm.Client
	scout  ports.Scout
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.Evaluator = (*Evaluator)(nil)

// NewEvaluator constructs the evaluator stage. Follow-up tasks are handed
// to the same scout implementation the orchestrator uses.
func NewEvaluator(client llm.Client, scout ports.Scout, cfg config.Config, logger *slog.Logger) *Evaluator {
	return &Evaluator{client: client, scout: scout, cfg: cfg, logger: logger, now: time.Now}
}

// Curate runs the evaluation loop: evaluate, optionally dispatch follow-up
// scouts, merge their stories additively, and evaluate once more. The loop
// performs at most one extra scouting round before terminating.
func (e *Evaluator) Curate(ctx context.Context, stories []domain.NewsStory) ([]domain.NewsStory, error) {
	system := prompts.Evaluator(e.now().Format("2006-01-02"), e.cfg.UserProfile, e.cfg.Interests)

	pool := stories
	cycles := 0
	var history []llm.Message
	var completed []domain.ResearchTask

	for {
		out, err := e.evaluate(ctx, system, pool, completed, history)
		if err != nil {
			return nil, err
		}

		next := e.routeNext(out.InvestigatorTasks, cycles)
		if next.kind == routeTerminate {
			if e.logger != nil {
				e.logger.Info("evaluation complete", "curated", len(out.NewsStories), "followup_cycles", cycles)
			}
			return out.NewsStories, nil
		}

		fresh, err := e.dispatch(ctx, next.tasks)
		if err != nil {
			return nil, err
		}

		// Union merge: follow-up findings extend the curated set, they
		// never replace it.
		pool = append(out.NewsStories, fresh...)
		completed = next.tasks
		cycles++
		history = append(history, cycleSummary(cycles, len(fresh), pool))
	}
}

// evaluate performs one structured evaluation pass over the story pool and
// the accumulated conversation history.
func (e *Evaluator) evaluate(ctx context.Context, system string, pool []domain.NewsStory, completed []domain.ResearchTask, history []llm.Message) (*evaluatorOutput, error) {
	payload, err := json.Marshal(map[string]any{"NewsStories": pool})
	if err != nil {
		return nil, fmt.Errorf("marshal stories: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: string(payload)})
	messages = append(messages, history...)
	if len(completed) > 0 {
		done, err := json.Marshal(map[string]any{"InvestigatorTasks already completed": completed})
		if err != nil {
			return nil, fmt.Errorf("marshal completed tasks: %w", err)
		}
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: string(done)})
	}

	var out evaluatorOutput
	if err := invokeStructured(ctx, e.client, e.cfg.Models.Evaluator, system, messages, &out); err != nil {
		return nil, fmt.Errorf("evaluate stories: %w", err)
	}
	return &out, nil
}

// routeNext decides whether to dispatch follow-up scouts or terminate.
// A single investigator task is honored per pass; the cycle cap wins over
// any pending tasks.
func (e *Evaluator) routeNext(tasks []domain.ResearchTask, cycles int) route {
	if len(tasks) == 0 || cycles >= maxFollowupCycles {
		return route{kind: routeTerminate}
	}
	if len(tasks) > maxInvestigatorTasks {
		if e.logger != nil {
			e.logger.Warn("evaluator proposed multiple follow-ups, keeping first", "proposed", len(tasks))
		}
		tasks = tasks[:maxInvestigatorTasks]
	}
	return route{kind: routeDispatch, tasks: tasks}
}

// dispatch fans out one scout per follow-up task and joins them, merging
// results regardless of completion order.
func (e *Evaluator) dispatch(ctx context.Context, tasks []domain.ResearchTask) ([]domain.NewsStory, error) {
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
			stories, err := e.scout.Investigate(ctx, task)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstEr == nil {
					firstEr = fmt.Errorf("follow-up scout %q: %w", task.Topic, err)
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

// cycleSummary records a completed follow-up round in the conversation
// history: cycle number, how many stories were appended, and a preview of
// up to three of the newest ones.
func cycleSummary(cycle, appended int, pool []domain.NewsStory) llm.Message {
	type preview struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	previews := make([]preview, 0, 3)
	for i := len(pool) - 1; i >= 0 && len(previews) < 3; i-- {
		previews = append(previews, preview{Title: pool[i].Title, URL: pool[i].URL})
	}

	payload, _ := json.Marshal(map[string]any{
		"followup_complete": true,
		"followup_cycles":   cycle,
		"appended_count":    appended,
		"appended_preview":  previews,
	})
	return llm.Message{Role: llm.RoleUser, Content: string(payload)}
}
