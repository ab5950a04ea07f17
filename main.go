// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CrawX/go-guildhush/config"
	"github.com/CrawX/go-guildhush/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	conf    *config.Config
)

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	rootCmd := &cobra.Command{
		Use:           "guildhush",
		Short:         "Hide guilds and folders and silence what they signal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			var err error
			conf, err = config.ReadConfig(cfgFile)
			if err != nil {
				return err
			}

			if conf.Loglevel != nil {
				log.SetLogLevel(*conf.Loglevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.toml", "config file path")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(hideServerCmd())
	rootCmd.AddCommand(hideFolderCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(clearCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("Command failed")
		cancel()
		os.Exit(1)
	}
}
