package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds simulator settings loaded from flags, env, or config file.
type Config struct {
	LogLevel          string
	Snapshot          string
	MaxCrosses        int
	MaxVirtualCrosses int
	// Slippage and MinPrecision are on the 10^12 denominator, 10^10 is 1%.
	Slippage     *big.Int
	MinPrecision *big.Int
	Workers      int
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVARIANT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("snapshot", "")
	v.SetDefault("max-crosses", 16)
	v.SetDefault("max-virtual-crosses", 10)
	v.SetDefault("slippage", "0")
	v.SetDefault("min-precision", "10000000000")
	v.SetDefault("workers", 4)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("invariant")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	slippage, err := getBigInt(v, "slippage")
	if err != nil {
		return Config{}, err
	}
	minPrecision, err := getBigInt(v, "min-precision")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogLevel:          v.GetString("log-level"),
		Snapshot:          v.GetString("snapshot"),
		MaxCrosses:        v.GetInt("max-crosses"),
		MaxVirtualCrosses: v.GetInt("max-virtual-crosses"),
		Slippage:          slippage,
		MinPrecision:      minPrecision,
		Workers:           v.GetInt("workers"),
	}
	if cfg.MaxCrosses <= 0 || cfg.MaxVirtualCrosses <= 0 {
		return Config{}, fmt.Errorf("max crosses must be positive")
	}
	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("workers must be positive")
	}

	return cfg, nil
}

func getBigInt(v *viper.Viper, key string) (*big.Int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	out, ok := new(big.Int).SetString(raw, 10)
	if !ok || out.Sign() < 0 {
		return nil, fmt.Errorf("%s: invalid value %q", key, raw)
	}
	return out, nil
}
