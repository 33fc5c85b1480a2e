package domain

import "fmt"

// ResearchTask is a single unit of investigation handed to a scout.
// Tasks are created by the planner or the evaluator and are never
// modified after creation.
type ResearchTask struct {
	Topic          string `json:"topic"`
	AdditionalInfo string `json:"additional_info"`
}

// Validate checks that the task carries enough context for a scout to work.
func (t ResearchTask) Validate() error {
	if t.Topic == "" {
		return fmt.Errorf("research task topic is empty")
	}
	if t.AdditionalInfo == "" {
		return fmt.Errorf("research task %q has no guidance", t.Topic)
	}
	return nil
}

// NewsStory is a scored finding produced by a scout and curated by the
// evaluator. Timestamp is an ISO-8601 date string as reported by the model.
type NewsStory struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic"`
}

// Citable reports whether the story can be referenced in the newsletter.
func (s NewsStory) Citable() bool {
	return s.URL != "" && s.Source != ""
}

// Validate enforces the story invariants: a score within [1,10] and a
// citable source.
func (s NewsStory) Validate() error {
	if s.Score < 1 || s.Score > 10 {
		return fmt.Errorf("story %q score %d outside [1,10]", s.Title, s.Score)
	}
	if !s.Citable() {
		return fmt.Errorf("story %q is missing url or source", s.Title)
	}
	return nil
}

// RunResult is what a completed pipeline run hands back to the caller.
type RunResult struct {
	RunID   string
	Report  string
	Stories []NewsStory
}
