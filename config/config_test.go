package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetDuration(ConfigSearchTimeBudget), 980*time.Millisecond)
	is.Equal(c.GetInt(ConfigSearchMaxDepth), 20)
	is.Equal(c.GetInt(ConfigDistanceWeight), 100000)
	is.True(!c.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{"--debug", "--search-time-budget", "250ms", "--selfplay-games=7"})
	is.NoErr(err)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.GetDuration(ConfigSearchTimeBudget), 250*time.Millisecond)
	is.Equal(c.GetInt(ConfigSelfplayGames), 7)
	is.Equal(c.GetString(ConfigServerAddr), ":8088")
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("QUORIDOR_SEARCH_MAX_DEPTH", "6")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt(ConfigSearchMaxDepth), 6)
}

func TestLoadUnknownFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--no-such-flag"}) != nil)
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	c.Set(ConfigDataPath, "definitely-not-here")
	c.AdjustRelativePaths("/opt/quoridor")
	is.Equal(c.GetString(ConfigDataPath), "/opt/quoridor/definitely-not-here")
}

func TestLoadKeepsPositionalArgs(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--search-max-depth", "3", "engine", "-time", "1s"}))
	is.Equal(c.GetInt(ConfigSearchMaxDepth), 3)
	is.Equal(c.Args(), []string{"engine", "-time", "1s"})
}
