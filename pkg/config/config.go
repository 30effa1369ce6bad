package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Logger      struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		Output     string `yaml:"output"`
		TimeFormat string `yaml:"time_format"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Simulation struct {
		MaxPaths       int `yaml:"max_paths"`
		MaxHorizonDays int `yaml:"max_horizon_days"`
		SamplePaths    int `yaml:"sample_paths"`
	} `yaml:"simulation"`
	Solver struct {
		PenaltyWeight  float64       `yaml:"penalty_weight"`
		MaxRuntime     time.Duration `yaml:"max_runtime"`
		FrontierPoints int           `yaml:"frontier_points"`
		MinWeightFloor float64       `yaml:"min_weight_floor"`
	} `yaml:"solver"`
	BlackLitterman struct {
		Tau          float64 `yaml:"tau"`
		RiskAversion float64 `yaml:"risk_aversion"`
	} `yaml:"black_litterman"`
	Market struct {
		RiskFreeRate       float64 `yaml:"risk_free_rate"`
		DefaultCorrelation float64 `yaml:"default_correlation"`
		AllocationCutoff   float64 `yaml:"allocation_cutoff"`
	} `yaml:"market"`
	Funds struct {
		SnapshotPath     string `yaml:"snapshot_path"`
		SyntheticHistory bool   `yaml:"synthetic_history"`
		SyntheticSeed    int64  `yaml:"synthetic_seed"`
	} `yaml:"funds"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("FUND_SNAPSHOT_PATH"); v != "" {
		c.Funds.SnapshotPath = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Market.RiskFreeRate = f
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stderr"
	}
	if c.Simulation.MaxPaths == 0 {
		c.Simulation.MaxPaths = 10000
	}
	if c.Simulation.MaxHorizonDays == 0 {
		c.Simulation.MaxHorizonDays = 252
	}
	if c.Simulation.SamplePaths == 0 {
		c.Simulation.SamplePaths = 10
	}
	if c.Solver.PenaltyWeight == 0 {
		c.Solver.PenaltyWeight = 1000
	}
	if c.Solver.MaxRuntime == 0 {
		c.Solver.MaxRuntime = 5 * time.Second
	}
	if c.Solver.FrontierPoints == 0 {
		c.Solver.FrontierPoints = 50
	}
	if c.Solver.MinWeightFloor == 0 {
		c.Solver.MinWeightFloor = 0.01
	}
	if c.BlackLitterman.Tau == 0 {
		c.BlackLitterman.Tau = 0.05
	}
	if c.BlackLitterman.RiskAversion == 0 {
		c.BlackLitterman.RiskAversion = 2.5
	}
	if c.Market.RiskFreeRate == 0 {
		c.Market.RiskFreeRate = 0.06
	}
	if c.Market.DefaultCorrelation == 0 {
		c.Market.DefaultCorrelation = 0.5
	}
	if c.Market.AllocationCutoff == 0 {
		c.Market.AllocationCutoff = 0.01
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Simulation.MaxPaths < 1 {
		return fmt.Errorf("simulation.max_paths must be positive")
	}
	if c.Simulation.MaxHorizonDays < 1 {
		return fmt.Errorf("simulation.max_horizon_days must be positive")
	}
	if c.BlackLitterman.Tau <= 0 {
		return fmt.Errorf("black_litterman.tau must be positive")
	}
	if c.BlackLitterman.RiskAversion <= 0 {
		return fmt.Errorf("black_litterman.risk_aversion must be positive")
	}
	if c.Market.DefaultCorrelation < -1 || c.Market.DefaultCorrelation > 1 {
		return fmt.Errorf("market.default_correlation must be in [-1, 1], got %v", c.Market.DefaultCorrelation)
	}
	if c.Market.AllocationCutoff < 0 || c.Market.AllocationCutoff >= 1 {
		return fmt.Errorf("market.allocation_cutoff must be in [0, 1)")
	}
	return nil
}
