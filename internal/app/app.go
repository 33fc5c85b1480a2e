package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/RyanWillie/Thinkle/internal/agent"
	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/llm"
	"github.com/RyanWillie/Thinkle/internal/report"
	"github.com/RyanWillie/Thinkle/internal/tools"
	"github.com/RyanWillie/Thinkle/internal/usecase"
)

const outputDir = "data/outputs"

// Secrets carry the third-party API keys collected once at process start.
type Secrets struct {
	OpenAIKey    string
	AnthropicKey string
	TavilyKey    string
}

// Application wires config and credentials into the runnable pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	reports  *report.Store
	logger   *slog.Logger
}

// New builds the application: tool registry gated by the content toggles,
// model router, the four stages, and the orchestrator.
func New(cfg config.Config, secrets Secrets, logger *slog.Logger) *Application {
	router := llm.NewRouter(llm.Credentials{
		OpenAIKey:    secrets.OpenAIKey,
		AnthropicKey: secrets.AnthropicKey,
	})

	registry := tools.NewRegistry()
	if cfg.Content.IncludeNews {
		registry.Register(tools.NewWebSearch(secrets.TavilyKey))
	}
	if cfg.Content.IncludeReddit {
		registry.Register(tools.NewRedditSearch(cfg.Content.Reddit))
	}
	if cfg.Content.IncludeAcademic {
		registry.Register(tools.NewArxivSearch())
	}
	logger.Info("tool registry ready", "tools", registry.Len())

	scout := agent.NewScout(router, registry, cfg, logger.With("component", "scout"))
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Planner:   agent.NewPlanner(router, cfg, logger.With("component", "planner")),
		Scout:     scout,
		Evaluator: agent.NewEvaluator(router, scout, cfg, logger.With("component", "evaluator")),
		Writer:    agent.NewWriter(router, cfg, logger.With("component", "writer")),
		Logger:    logger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		reports:  report.NewStore(outputDir),
		logger:   logger,
	}
}

// Run executes one newsletter generation and persists the report, returning
// the path it was written to.
func (a *Application) Run(ctx context.Context) (string, error) {
	result, err := a.pipeline.Run(ctx)
	if err != nil {
		return "", err
	}

	path, err := a.reports.Save(result.Report, time.Now())
	if err != nil {
		return "", err
	}

	a.logger.Info("report saved", "path", path, "stories", len(result.Stories))
	return path, nil
}
