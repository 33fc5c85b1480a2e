package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/RyanWillie/Thinkle/internal/app"
	"github.com/RyanWillie/Thinkle/internal/config"
	"github.com/RyanWillie/Thinkle/internal/logging"
)

const defaultConfigPath = "config/interests.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the YAML configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Credentials come from the environment (optionally via .env); they
	// are read here once and passed down explicitly.
	_ = godotenv.Load()

	logger := logging.ForVerbosity(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "configuration file not found: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		}
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		"interests", len(cfg.Interests),
		"tone", cfg.Newsletter.Tone,
		"max_stories", cfg.Newsletter.MaxStories)

	secrets := app.Secrets{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		TavilyKey:    os.Getenv("TAVILY_API_KEY"),
	}

	application := app.New(cfg, secrets, logger)
	path, err := application.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "newsletter generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("newsletter written to %s\n", path)
}
