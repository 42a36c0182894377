package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foodrescue/rescue-cli/internal/adapters/model/gemini"
	tomlpartners "github.com/foodrescue/rescue-cli/internal/adapters/partners/tomlfile"
	reportrender "github.com/foodrescue/rescue-cli/internal/adapters/render/report"
	"github.com/foodrescue/rescue-cli/internal/adapters/repo/jsonfile"
	"github.com/foodrescue/rescue-cli/internal/application"
	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/observability"
	"github.com/foodrescue/rescue-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName    = "config"
	configType    = "toml"
	configDirName = ".foodrescue"
)

type app struct {
	service      *application.Service
	orchestrator *application.Orchestrator
	partners     ports.PartnerSource
	renderer     func(application.SessionReport, reportrender.RenderOptions) (string, error)
	metrics      *observability.Registry
	logger       *zap.Logger
	config       *viper.Viper
	now          func() time.Time
	aiEnabled    bool
}

func wireApp() (*app, error) {
	cfg, err := newConfig()
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	logger, err := observability.NewLogger(os.Getenv("RESCUE_DEBUG") != "")
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	metrics := observability.NewRegistry()
	clock := ports.SystemClock{}

	repo, err := jsonfile.NewRepository(cfg, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	partnerSource, err := tomlpartners.NewSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire partner source: %w", err)
	}

	var model ports.TextModel
	aiEnabled := cfg.GetBool("ai.enabled")
	if aiEnabled {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			logger.Warn("ai mode enabled but GEMINI_API_KEY is not set, reports use the template")
			aiEnabled = false
		} else {
			client, err := gemini.NewClient(context.Background(), apiKey, cfg.GetString("ai.model"))
			if err != nil {
				logger.Warn("gemini client unavailable, reports use the template", zap.Error(err))
				aiEnabled = false
			} else {
				model = client
			}
		}
	}

	reporter := application.NewReporter(model, clock, logger, metrics, application.ReporterConfig{
		CallTimeout: cfg.GetDuration("ai.timeout"),
		MaxRetries:  cfg.GetInt("ai.max_retries"),
	})

	mode := application.ReportModeTemplate
	if aiEnabled {
		mode = application.ReportModeAI
	}

	orchestrator := application.NewOrchestrator(repo, partnerSource, reporter, logger, metrics, application.OrchestratorConfig{
		Budget: cfg.GetDuration("orchestrator.budget"),
		Mode:   mode,
	})

	return &app{
		service:      application.NewService(repo, clock, logger),
		orchestrator: orchestrator,
		partners:     partnerSource,
		renderer:     reportrender.Render,
		metrics:      metrics,
		logger:       logger,
		config:       cfg,
		now:          time.Now,
		aiEnabled:    aiEnabled,
	}, nil
}

func newConfig() (*viper.Viper, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))

	cfg.SetDefault("ai.enabled", false)
	cfg.SetDefault("ai.model", "")
	cfg.SetDefault("ai.timeout", 8*time.Second)
	cfg.SetDefault("ai.max_retries", 2)
	cfg.SetDefault("orchestrator.budget", 5*time.Second)
	cfg.SetDefault("metrics.dir", filepath.Join(homeDir, configDirName, "metrics"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

// defaultSessionID names the daily reporting period, matching the
// session files the dashboard scripts expect.
func defaultSessionID(now time.Time) domain.SessionID {
	return domain.SessionID("daily_" + now.Format("20060102"))
}
