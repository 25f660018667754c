package trophylodge

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sjzar/trophylodge/internal/game/process"
	"github.com/sjzar/trophylodge/internal/lodge/conf"
	"github.com/sjzar/trophylodge/internal/lodge/http"
	"github.com/sjzar/trophylodge/internal/lodge/monitor"
	"github.com/sjzar/trophylodge/internal/lodge/store"
)

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().String("http", "", "serve the lodge on this address, e.g. 127.0.0.1:5030")
	monitorCmd.Flags().Bool("restart", false, "keep tracking after the game closes")
	monitorCmd.Flags().Duration("poll-interval", 0, "time between reads of the harvest record")
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Track trophies from the running game",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		_ = v.BindPFlag("http_addr", cmd.Flags().Lookup("http"))
		_ = v.BindPFlag("restart", cmd.Flags().Lookup("restart"))
		if cmd.Flags().Changed("poll-interval") {
			_ = v.BindPFlag("poll_interval", cmd.Flags().Lookup("poll-interval"))
		}
		c, err := loadConfig(v)
		if err != nil {
			return err
		}

		st, err := store.Open(c.DBPath())
		if err != nil {
			return err
		}
		defer st.Close()

		svc := monitor.NewService(c, st, process.NewFinder())
		if err := svc.Start(); err != nil {
			return err
		}
		defer svc.Stop()

		if c.HTTPAddr != "" {
			srv := http.NewServer(c.HTTPAddr, st, svc)
			if err := srv.Start(); err != nil {
				return err
			}
			defer srv.Stop()
		}

		conf.Watch(v, func(nc *conf.Config) {
			setLevel(nc.Debug)
		})

		log.Info().Str("process", c.ProcessName).Str("db", c.DBPath()).Msg("monitoring")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("shutting down")
		case <-svc.Done():
		}
		return nil
	},
}
