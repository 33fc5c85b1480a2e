package agent

import (
	"fmt"

	"github.com/RyanWillie/Thinkle/internal/domain"
)

// plannerOutput is the structured payload produced by the planner stage.
type plannerOutput struct {
	ScoutTasks []domain.ResearchTask `json:"ScoutTasks"`
}

func (o *plannerOutput) Validate() error {
	if len(o.ScoutTasks) == 0 {
		return fmt.Errorf("planner produced no tasks")
	}
	for i, task := range o.ScoutTasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}

// scoutOutput is the structured payload produced by a scout instance.
type scoutOutput struct {
	NewsStories []domain.NewsStory `json:"NewsStories"`
	Explanation string             `json:"Explanation"`
}

func (o *scoutOutput) Validate() error {
	for i, story := range o.NewsStories {
		if err := story.Validate(); err != nil {
			return fmt.Errorf("story %d: %w", i, err)
		}
	}
	return nil
}

// evaluatorOutput is the structured payload produced by one evaluation pass.
type evaluatorOutput struct {
	NewsStories       []domain.NewsStory    `json:"NewsStories"`
	InvestigatorTasks []domain.ResearchTask `json:"InvestigatorTasks"`
	Explanation       string                `json:"Explanation"`
}

func (o *evaluatorOutput) Validate() error {
	for i, story := range o.NewsStories {
		if err := story.Validate(); err != nil {
			return fmt.Errorf("story %d: %w", i, err)
		}
	}
	for i, task := range o.InvestigatorTasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("investigator task %d: %w", i, err)
		}
	}
	return nil
}

// writerOutput is the structured payload produced by the writer stage.
type writerOutput struct {
	Report string `json:"Report"`
}

func (o *writerOutput) Validate() error {
	if o.Report == "" {
		return fmt.Errorf("writer produced an empty report")
	}
	return nil
}
