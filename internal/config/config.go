package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the read-only snapshot driving a newsletter run. It is loaded
// and validated once at startup and shared by every stage.
type Config struct {
	Interests   []string           `yaml:"interests"`
	UserProfile string             `yaml:"user_profile"`
	Newsletter  NewsletterSettings `yaml:"newsletter"`
	Content     ContentSettings    `yaml:"content"`
	Output      OutputSettings     `yaml:"output"`
	Models      ModelSettings      `yaml:"models"`
	MaxTasks    int                `yaml:"max_tasks"`
}

// NewsletterSettings control the shape of the generated briefing.
type NewsletterSettings struct {
	Tone            string `yaml:"tone"`
	IncludeOpinions bool   `yaml:"include_opinions"`
	Frequency       string `yaml:"frequency"`
	MaxStories      int    `yaml:"max_stories"`
}

// ContentSettings toggle which research sources the scouts may use.
type ContentSettings struct {
	IncludeAcademic bool            `yaml:"include_academic"`
	IncludeReddit   bool            `yaml:"include_reddit"`
	IncludeYoutube  bool            `yaml:"include_youtube"`
	IncludeNews     bool            `yaml:"include_news"`
	Reddit          RedditSettings  `yaml:"reddit"`
	Youtube         YoutubeSettings `yaml:"youtube"`
}

// RedditSettings bound what community discussion is worth surfacing.
type RedditSettings struct {
	MinUpvotes  int `yaml:"min_upvotes"`
	MaxAgeHours int `yaml:"max_age_hours"`
}

// YoutubeSettings bound what video content is worth surfacing.
type YoutubeSettings struct {
	MinViews           int `yaml:"min_views"`
	MaxDurationMinutes int `yaml:"max_duration_minutes"`
}

// OutputSettings describe how the final report is rendered.
type OutputSettings struct {
	Format              string `yaml:"format"`
	IncludeSources      bool   `yaml:"include_sources"`
	IncludeSummaryStats bool   `yaml:"include_summary_stats"`
}

// ModelSettings name the model used by each stage.
type ModelSettings struct {
	Planner   string `yaml:"planner"`
	Scout     string `yaml:"scout"`
	Evaluator string `yaml:"evaluator"`
	Writer    string `yaml:"writer"`
}

var (
	validTones       = []string{"professional", "witty", "casual", "academic"}
	validFrequencies = []string{"daily", "weekly"}
	validFormats     = []string{"markdown", "pdf", "html"}
)

// Default returns the configuration used when a field is absent from the
// YAML file. Interests have no default: they are required.
func Default() Config {
	return Config{
		Newsletter: NewsletterSettings{
			Tone:            "witty",
			IncludeOpinions: true,
			Frequency:       "weekly",
			MaxStories:      10,
		},
		Content: ContentSettings{
			IncludeAcademic: true,
			IncludeReddit:   true,
			IncludeYoutube:  true,
			IncludeNews:     true,
			Reddit:          RedditSettings{MinUpvotes: 100, MaxAgeHours: 48},
			Youtube:         YoutubeSettings{MinViews: 10000, MaxDurationMinutes: 60},
		},
		Output: OutputSettings{
			Format:              "markdown",
			IncludeSources:      true,
			IncludeSummaryStats: true,
		},
		Models: ModelSettings{
			Planner:   "gpt-5-mini",
			Scout:     "gpt-5-mini",
			Evaluator: "gpt-5-mini",
			Writer:    "gpt-5-mini",
		},
		MaxTasks: 1,
	}
}

// Load reads, parses, and validates the YAML file at path. The returned
// error wraps os.ErrNotExist when the file is missing so callers can
// distinguish a missing file from an invalid one.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes raw YAML into a validated Config. Unknown keys at any
// nesting level are rejected.
func Parse(raw []byte) (Config, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Config{}, fmt.Errorf("configuration file is empty")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml configuration: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration back out as YAML. Loading the written file
// yields a field-for-field identical Config.
func Save(cfg Config, path string) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// normalize trims interests and removes case-insensitive duplicates while
// preserving first-seen order.
func (c *Config) normalize() {
	seen := make(map[string]struct{}, len(c.Interests))
	unique := make([]string, 0, len(c.Interests))
	for _, interest := range c.Interests {
		trimmed := strings.TrimSpace(interest)
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, trimmed)
	}
	c.Interests = unique
}

// Validate checks every range and enum constraint. Each bound fails
// independently with its own message.
func (c Config) Validate() error {
	if len(c.Interests) == 0 {
		return fmt.Errorf("at least one interest must be specified")
	}
	for _, interest := range c.Interests {
		if interest == "" {
			return fmt.Errorf("interests must not contain empty entries")
		}
	}

	if !contains(validTones, c.Newsletter.Tone) {
		return fmt.Errorf("newsletter.tone %q must be one of %s", c.Newsletter.Tone, strings.Join(validTones, ", "))
	}
	if !contains(validFrequencies, c.Newsletter.Frequency) {
		return fmt.Errorf("newsletter.frequency %q must be one of %s", c.Newsletter.Frequency, strings.Join(validFrequencies, ", "))
	}
	if c.Newsletter.MaxStories < 1 || c.Newsletter.MaxStories > 50 {
		return fmt.Errorf("newsletter.max_stories %d must be within [1,50]", c.Newsletter.MaxStories)
	}

	if !c.Content.IncludeAcademic && !c.Content.IncludeReddit && !c.Content.IncludeYoutube && !c.Content.IncludeNews {
		return fmt.Errorf("at least one content source must be enabled")
	}
	if c.Content.Reddit.MinUpvotes < 0 {
		return fmt.Errorf("content.reddit.min_upvotes %d must not be negative", c.Content.Reddit.MinUpvotes)
	}
	if c.Content.Reddit.MaxAgeHours <= 0 {
		return fmt.Errorf("content.reddit.max_age_hours %d must be positive", c.Content.Reddit.MaxAgeHours)
	}
	if c.Content.Youtube.MinViews < 0 {
		return fmt.Errorf("content.youtube.min_views %d must not be negative", c.Content.Youtube.MinViews)
	}
	if c.Content.Youtube.MaxDurationMinutes <= 0 {
		return fmt.Errorf("content.youtube.max_duration_minutes %d must be positive", c.Content.Youtube.MaxDurationMinutes)
	}

	if !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("output.format %q must be one of %s", c.Output.Format, strings.Join(validFormats, ", "))
	}

	for stage, model := range map[string]string{
		"planner":   c.Models.Planner,
		"scout":     c.Models.Scout,
		"evaluator": c.Models.Evaluator,
		"writer":    c.Models.Writer,
	} {
		if strings.TrimSpace(model) == "" {
			return fmt.Errorf("models.%s must not be empty", stage)
		}
	}

	if c.MaxTasks < 1 || c.MaxTasks > 10 {
		return fmt.Errorf("max_tasks %d must be within [1,10]", c.MaxTasks)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
