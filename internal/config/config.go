// Package config resolves adaptutor settings from defaults, an optional
// adaptutor.yaml, ADAPTUTOR_* environment variables (a .env file is read
// first) and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/session"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ADAPTUTOR_BANK_PATH for bank.path.
const EnvPrefix = "ADAPTUTOR"

type Config struct {
	Bank           BankConfig    `mapstructure:"bank"`
	BKT            BKTConfig     `mapstructure:"bkt"`
	FocusThreshold float64       `mapstructure:"focus_threshold"`
	History        HistoryConfig `mapstructure:"history"`
	Log            LogConfig     `mapstructure:"log"`
}

type BankConfig struct {
	Path   string `mapstructure:"path"`
	Sheet  string `mapstructure:"sheet"`
	Strict bool   `mapstructure:"strict"`
}

type BKTConfig struct {
	PInit  float64 `mapstructure:"p_init"`
	PLearn float64 `mapstructure:"p_learn"`
	PGuess float64 `mapstructure:"p_guess"`
	PSlip  float64 `mapstructure:"p_slip"`
}

type HistoryConfig struct {
	// DB is the history log path. Empty means the XDG default.
	DB string `mapstructure:"db"`
}

type LogConfig struct {
	// File is the log file path. Empty means the XDG default.
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"bank.path":   "bank",
	"bank.sheet":  "sheet",
	"bank.strict": "strict",
	"history.db":  "history-db",
	"log.level":   "log-level",
}

// Load resolves the configuration. configFile, when set, must exist;
// otherwise adaptutor.yaml is looked up in the working directory and the
// user config directory and may be absent. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("adaptutor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "adaptutor"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	p := mastery.DefaultParams()
	v.SetDefault("bank.path", "questions.csv")
	v.SetDefault("bank.sheet", "")
	v.SetDefault("bank.strict", false)
	v.SetDefault("bkt.p_init", p.PInit)
	v.SetDefault("bkt.p_learn", p.PLearn)
	v.SetDefault("bkt.p_guess", p.PGuess)
	v.SetDefault("bkt.p_slip", p.PSlip)
	v.SetDefault("focus_threshold", session.DefaultFocusThreshold)
	v.SetDefault("history.db", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Params returns the BKT parameters.
func (c *Config) Params() mastery.Params {
	return mastery.Params{
		PInit:  c.BKT.PInit,
		PLearn: c.BKT.PLearn,
		PGuess: c.BKT.PGuess,
		PSlip:  c.BKT.PSlip,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bank.Path) == "" {
		return errors.New("config: bank.path must not be empty")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: bkt: %w", err)
	}
	if c.FocusThreshold < 0 || c.FocusThreshold > 1 {
		return fmt.Errorf("config: focus_threshold %v is outside [0, 1]", c.FocusThreshold)
	}
	if c.Log.Level != "off" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	return nil
}
