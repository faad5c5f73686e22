package utils

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// StdinPath selects standard input wherever a crontab path is accepted
const StdinPath = "-"

type Config struct {
	Input       string `env:"CRONTAB_INPUT" envDefault:"-"`
	Output      string `env:"CRONTAB_OUTPUT" envDefault:"text"`
	FailFast    bool   `env:"CRONTAB_FAIL_FAST" envDefault:"false"`
	RunID       string `env:"RUN_ID" envDefault:""`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"APP_ENV" envDefault:"production"`
}

var appConfig *Config

func GetConfig(ctx context.Context) *Config {
	if appConfig != nil {
		return appConfig
	}

	cfg, err := LoadConfig(ctx, ".env")
	if err != nil {
		panic(err)
	}
	appConfig = cfg
	return appConfig
}

// LoadConfig reads dotenv files (missing ones are skipped) and then the
// process environment. A run id is generated when none is configured.
func LoadConfig(ctx context.Context, dotenvFiles ...string) (*Config, error) {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil {
			LoggerFromCtx(ctx).Debugw("Unable to load dotenv file, continuing without it", "file", file)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.New().String()
	}
	return cfg, nil
}
