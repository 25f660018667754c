package conf

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/offsets"
	"github.com/sjzar/trophylodge/internal/game/telemetry"
	"github.com/sjzar/trophylodge/internal/lodge/store"
	"github.com/sjzar/trophylodge/pkg/util"
)

const (
	AppName   = "trophylodge"
	EnvPrefix = "TROPHYLODGE"
)

type Config struct {
	ProcessName    string        `mapstructure:"process_name"`
	DataDir        string        `mapstructure:"data_dir"`
	SearchInterval time.Duration `mapstructure:"search_interval"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	HTTPAddr       string        `mapstructure:"http_addr"`
	Restart        bool          `mapstructure:"restart"`
	Debug          bool          `mapstructure:"debug"`
}

// DBPath is where the sqlite store lives.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, store.DBFile)
}

func (c *Config) Telemetry() telemetry.Config {
	return telemetry.Config{
		ProcessName:    c.ProcessName,
		SearchInterval: c.SearchInterval,
		PollInterval:   c.PollInterval,
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("process_name", offsets.ProcessName)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("search_interval", telemetry.DefaultSearchInterval)
	v.SetDefault("poll_interval", telemetry.DefaultPollInterval)
	v.SetDefault("http_addr", "")
	v.SetDefault("restart", false)
	v.SetDefault("debug", false)
}

// Load reads configFile, or trophylodge.* from the working directory when it
// is empty. A missing implicit config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		if ok, err := util.IsFile(configFile); err != nil || !ok {
			return nil, errors.ConfigLoadFailed(errors.InvalidArg(configFile))
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		if dir := v.GetString("data_dir"); util.IsDir(dir) {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.ConfigLoadFailed(err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("config loaded")
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.ConfigLoadFailed(err)
	}
	if c.ProcessName == "" {
		c.ProcessName = offsets.ProcessName
	}
	return c, nil
}

// Watch calls fn with the decoded config whenever the config file changes.
func Watch(v *viper.Viper, fn func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		c, err := decode(v)
		if err != nil {
			log.Err(err).Str("file", e.Name).Msg("reload config failed")
			return
		}
		log.Info().Str("file", e.Name).Msg("config reloaded")
		fn(c)
	})
	v.WatchConfig()
}
