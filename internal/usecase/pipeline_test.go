package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanWillie/Thinkle/internal/domain"
)

type stubPlanner struct {
	tasks []domain.ResearchTask
	err   error
}

func (s *stubPlanner) Plan(context.Context) ([]domain.ResearchTask, error) {
	return s.tasks, s.err
}

type stubScout struct {
	mu    sync.Mutex
	calls int
	delay map[string]time.Duration
	err   error
}

func (s *stubScout) Investigate(_ context.Context, task domain.ResearchTask) ([]domain.NewsStory, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if d, ok := s.delay[task.Topic]; ok {
		time.Sleep(d)
	}
	if s.err != nil {
		return nil, s.err
	}
	return []domain.NewsStory{{
		Title:     "story about " + task.Topic,
		Summary:   "s",
		Source:    "News",
		URL:       "https://example.com/" + task.Topic,
		Score:     7,
		Timestamp: "2026-08-20",
		Topic:     task.Topic,
	}}, nil
}

type stubEvaluator struct {
	received []domain.NewsStory
	err      error
}

func (s *stubEvaluator) Curate(_ context.Context, stories []domain.NewsStory) ([]domain.NewsStory, error) {
	s.received = stories
	return stories, s.err
}

type stubWriter struct {
	called bool
	err    error
}

func (s *stubWriter) Compose(_ context.Context, stories []domain.NewsStory) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return "report", nil
}

func tasks(topics ...string) []domain.ResearchTask {
	out := make([]domain.ResearchTask, 0, len(topics))
	for _, topic := range topics {
		out = append(out, domain.ResearchTask{Topic: topic, AdditionalInfo: "guidance"})
	}
	return out
}

func TestPipelineRunsAllStages(t *testing.T) {
	t.Parallel()

	scout := &stubScout{}
	evaluator := &stubEvaluator{}
	writer := &stubWriter{}
	pipeline := NewPipeline(PipelineDeps{
		Planner:   &stubPlanner{tasks: tasks("AI", "Robotics", "Climate")},
		Scout:     scout,
		Evaluator: evaluator,
		Writer:    writer,
	})

	result, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "report", result.Report)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, scout.calls)
	assert.Len(t, evaluator.received, 3)
	assert.Len(t, result.Stories, 3)
}

// Fan-in order must not matter: a slow scout delays the join but the merged
// set is the same regardless of completion order.
func TestPipelineMergesRegardlessOfCompletionOrder(t *testing.T) {
	t.Parallel()

	scout := &stubScout{delay: map[string]time.Duration{"AI": 30 * time.Millisecond}}
	evaluator := &stubEvaluator{}
	pipeline := NewPipeline(PipelineDeps{
		Planner:   &stubPlanner{tasks: tasks("AI", "Robotics")},
		Scout:     scout,
		Evaluator: evaluator,
		Writer:    &stubWriter{},
	})

	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	topics := make([]string, 0, len(evaluator.received))
	for _, s := range evaluator.received {
		topics = append(topics, s.Topic)
	}
	sort.Strings(topics)
	assert.Equal(t, []string{"AI", "Robotics"}, topics)
}

func TestPipelineAbortsOnPlannerFailure(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{}
	pipeline := NewPipeline(PipelineDeps{
		Planner:   &stubPlanner{err: errors.New("malformed plan")},
		Scout:     &stubScout{},
		Evaluator: &stubEvaluator{},
		Writer:    writer,
	})

	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planner stage")
	assert.False(t, writer.called)
}

func TestPipelineAbortsOnScoutFailure(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{}
	pipeline := NewPipeline(PipelineDeps{
		Planner:   &stubPlanner{tasks: tasks("AI")},
		Scout:     &stubScout{err: errors.New("model unavailable")},
		Evaluator: &stubEvaluator{},
		Writer:    writer,
	})

	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scout stage")
	assert.False(t, writer.called)
}

func TestPipelineAbortsOnWriterFailure(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Planner:   &stubPlanner{tasks: tasks("AI")},
		Scout:     &stubScout{},
		Evaluator: &stubEvaluator{},
		Writer:    &stubWriter{err: errors.New("compose failed")},
	})

	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writer stage")
}
