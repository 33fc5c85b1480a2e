package agent

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/domain"
	"github.com/RyanWillie/Thinkle/internal/llm"
)

// scriptedClient drives agent tests: each Invoke is answered by the respond
// func, and every request is recorded for inspection.
type scriptedClient struct {
	mu       sync.Mutex
	requests []llm.Request
	respond  func(call int, req llm.Request) (llm.Message, error)
}

func (c *scriptedClient) Invoke(_ context.Context, req llm.Request) (llm.Message, error) {
	c.mu.Lock()
	call := len(c.requests)
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return c.respond(call, req)
}

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *scriptedClient) request(i int) llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests[i]
}

// stubTool is a canned tool implementation for loop tests.
type stubTool struct {
	name   string
	result string
	err    error
	calls  int
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{"query": map[string]any{"type": "string"}},
		"required":   []string{"query"},
	}
}

func (s *stubTool) Call(context.Context, json.RawMessage) (string, error) {
	s.calls++
	return s.result, s.err
}

// fakeScout satisfies ports.Scout for evaluator and pipeline tests.
type fakeScout struct {
	mu      sync.Mutex
	topics  []string
	stories func(task domain.ResearchTask) []domain.NewsStory
	err     error
}

func (f *fakeScout) Investigate(_ context.Context, task domain.ResearchTask) ([]domain.NewsStory, error) {
	f.mu.Lock()
	f.topics = append(f.topics, task.Topic)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.stories == nil {
		return nil, nil
	}
	return f.stories(task), nil
}

func (f *fakeScout) investigations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Interests = []string{"AI", "Robotics"}
	cfg.UserProfile = "Test engineer."
	cfg.MaxTasks = 2
	return cfg
}

func story(title, topic string, score int) domain.NewsStory {
	return domain.NewsStory{
		Title:     title,
		Summary:   "summary of " + title,
		Source:    "News",
		URL:       "https://example.com/" + title,
		Score:     score,
		Timestamp: "2026-08-20",
		Topic:     topic,
	}
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}
