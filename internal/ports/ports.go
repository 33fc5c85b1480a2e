package ports

import (
	"context"

	"github.com/RyanWillie/Thinkle/internal/domain"
)

// Planner converts the user's interests and profile into research tasks.
type Planner interface {
	Plan(ctx context.Context) ([]domain.ResearchTask, error)
}

// Scout investigates a single research task and returns scored stories.
// Instances for different tasks share no mutable state and may run
// concurrently.
type Scout interface {
	Investigate(ctx context.Context, task domain.ResearchTask) ([]domain.NewsStory, error)
}

// Evaluator consolidates gathered stories into the final curated set,
// dispatching bounded follow-up scouting when coverage is insufficient.
type Evaluator interface {
	Curate(ctx context.Context, stories []domain.NewsStory) ([]domain.NewsStory, error)
}

// Writer composes the final newsletter report from the curated stories.
type Writer interface {
	Compose(ctx context.Context, stories []domain.NewsStory) (string, error)
}
