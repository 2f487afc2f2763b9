package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	*viper.Viper
	args []string
}

const (
	ConfigDebug            = "debug"
	ConfigCPUProfile       = "cpu-profile"
	ConfigMemProfile       = "mem-profile"
	ConfigSearchTimeBudget = "search-time-budget"
	ConfigSearchMaxDepth   = "search-max-depth"
	ConfigDistanceWeight   = "distance-weight"
	ConfigSelfplayGames    = "selfplay-games"
	ConfigSelfplayThreads  = "selfplay-threads"
	ConfigSelfplayMaxTurns = "selfplay-max-turns"
	ConfigSelfplayLog      = "selfplay-log"
	ConfigServerAddr       = "server-addr"
	ConfigVerifyMovegen    = "verify-movegen"
	ConfigDataPath         = "data-path"
)

const envPrefix = "QUORIDOR"

var sensitiveKeys = []string{}

// DefaultConfig returns a config with every default set and no flags or
// environment applied.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c)
	return c
}

func setDefaults(c *Config) {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigSearchTimeBudget, 980*time.Millisecond)
	c.SetDefault(ConfigSearchMaxDepth, 20)
	c.SetDefault(ConfigDistanceWeight, 100000)
	c.SetDefault(ConfigSelfplayGames, 100)
	c.SetDefault(ConfigSelfplayThreads, 4)
	c.SetDefault(ConfigSelfplayMaxTurns, 200)
	c.SetDefault(ConfigSelfplayLog, "")
	c.SetDefault(ConfigServerAddr, ":8088")
	c.SetDefault(ConfigVerifyMovegen, false)
	c.SetDefault(ConfigDataPath, "./data")
}

// Load reads command-line flags and QUORIDOR_* environment variables,
// flags taking precedence.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c)

	fs := pflag.NewFlagSet("quoridor", pflag.ContinueOnError)
	// Anything after the first positional argument is a shell command.
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.Duration(ConfigSearchTimeBudget, 980*time.Millisecond, "time the engine may spend on one move")
	fs.Int(ConfigSearchMaxDepth, 20, "deepest iteration the engine will try")
	fs.Int(ConfigDistanceWeight, 100000, "evaluation weight of one step of path distance")
	fs.Int(ConfigSelfplayGames, 100, "number of self-play games to run")
	fs.Int(ConfigSelfplayThreads, 4, "number of self-play games to run at once")
	fs.Int(ConfigSelfplayMaxTurns, 200, "self-play games longer than this are drawn")
	fs.String(ConfigSelfplayLog, "", "file to write self-play results to")
	fs.String(ConfigServerAddr, ":8088", "address for the websocket server")
	fs.Bool(ConfigVerifyMovegen, false, "cross-check generated moves against the rules engine")
	fs.String(ConfigDataPath, "./data", "directory holding position files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// Args are the positional arguments left after flags were parsed.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes relative paths absolute against basepath,
// usually the directory of the running executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigDataPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			// Exists relative to the working directory; leave it.
			continue
		}
		abs := filepath.Join(basepath, p)
		log.Debug().Str("key", key).Str("path", abs).Msg("adjusted-relative-path")
		c.Set(key, abs)
	}
}

// SanitizedSettings returns all settings with secrets masked, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for _, k := range sensitiveKeys {
		if _, ok := settings[k]; ok {
			settings[k] = "********"
		}
	}
	return settings
}
