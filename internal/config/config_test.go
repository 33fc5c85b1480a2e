package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
interests:
  - AI
  - Robotics
user_profile: "A robotics engineer."
newsletter:
  tone: professional
  include_opinions: false
  frequency: daily
  max_stories: 5
content:
  include_academic: true
  include_reddit: false
  include_youtube: false
  include_news: true
  reddit:
    min_upvotes: 50
    max_age_hours: 24
  youtube:
    min_views: 1000
    max_duration_minutes: 30
output:
  format: html
  include_sources: false
  include_summary_stats: false
models:
  planner: gpt-5-mini
  scout: gpt-5-mini
  evaluator: claude-sonnet-4-5
  writer: gpt-5-mini
max_tasks: 3
`

func TestParseValid(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"AI", "Robotics"}, cfg.Interests)
	assert.Equal(t, "professional", cfg.Newsletter.Tone)
	assert.Equal(t, 5, cfg.Newsletter.MaxStories)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Models.Evaluator)
	assert.Equal(t, 3, cfg.MaxTasks)
}

func TestInterestsDeduplication(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("interests:\n  - AI\n  - ai\n  - Robotics\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "Robotics"}, cfg.Interests)
}

func TestInterestsTrimmedAndOrderPreserved(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("interests:\n  - '  Quantum Computing '\n  - ai\n  - 'quantum computing'\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quantum Computing", "ai"}, cfg.Interests)
}

func TestNoContentSourceFails(t *testing.T) {
	t.Parallel()

	yaml := `
interests: [AI]
content:
  include_academic: false
  include_reddit: false
  include_youtube: false
  include_news: false
`
	_, err := Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one content source")
}

func TestBoundsFailIndependently(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
	}{
		{"max_stories too high", "interests: [AI]\nnewsletter:\n  max_stories: 51\n"},
		{"max_stories too low", "interests: [AI]\nnewsletter:\n  max_stories: 0\n"},
		{"reddit max_age_hours zero", "interests: [AI]\ncontent:\n  reddit:\n    max_age_hours: 0\n"},
		{"reddit min_upvotes negative", "interests: [AI]\ncontent:\n  reddit:\n    min_upvotes: -1\n"},
		{"youtube max_duration zero", "interests: [AI]\ncontent:\n  youtube:\n    max_duration_minutes: 0\n"},
		{"youtube min_views negative", "interests: [AI]\ncontent:\n  youtube:\n    min_views: -5\n"},
		{"max_tasks too high", "interests: [AI]\nmax_tasks: 11\n"},
		{"bad tone", "interests: [AI]\nnewsletter:\n  tone: sarcastic\n"},
		{"bad frequency", "interests: [AI]\nnewsletter:\n  frequency: hourly\n"},
		{"bad format", "interests: [AI]\noutput:\n  format: docx\n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("interests: [AI]\nsurprise: true\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("interests: [AI]\nnewsletter:\n  color: blue\n"))
	assert.Error(t, err)
}

func TestEmptyFileFails(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("   \n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestMissingInterestsFails(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("newsletter:\n  tone: witty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interest")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	original, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	require.NoError(t, Save(original, path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestDefaultsApplied(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("interests: [AI]\n"))
	require.NoError(t, err)

	assert.Equal(t, "witty", cfg.Newsletter.Tone)
	assert.Equal(t, 10, cfg.Newsletter.MaxStories)
	assert.True(t, cfg.Content.IncludeNews)
	assert.Equal(t, 48, cfg.Content.Reddit.MaxAgeHours)
	assert.Equal(t, 1, cfg.MaxTasks)
}
