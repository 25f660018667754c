package trophylodge

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sjzar/trophylodge/internal/lodge/conf"
	"github.com/sjzar/trophylodge/internal/lodge/store"
)

var (
	Debug      bool
	ConfigFile string
	DataDir    string
)

var rootCmd = &cobra.Command{
	Use:               "trophylodge",
	Short:             "Trophy tracker for theHunter: Call of the Wild",
	Long:              "trophylodge watches the running game and records every harvested animal in a local lodge.",
	SilenceUsage:      true,
	PersistentPreRun:  initLog,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "config file (default ./trophylodge.yaml)")
	rootCmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "directory for the lodge database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func initLog(cmd *cobra.Command, args []string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	setLevel(Debug)
}

func setLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// loadConfig binds the root flags into v and loads the config.
func loadConfig(v *viper.Viper) (*conf.Config, error) {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("data-dir") {
		v.Set("data_dir", DataDir)
	}
	if flags.Changed("debug") {
		v.Set("debug", Debug)
	}
	c, err := conf.Load(v, ConfigFile)
	if err != nil {
		return nil, err
	}
	setLevel(c.Debug)
	return c, nil
}

func openStore() (*store.Store, error) {
	c, err := loadConfig(viper.New())
	if err != nil {
		return nil, err
	}
	return store.Open(c.DBPath())
}
