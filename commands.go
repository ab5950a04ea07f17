// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"strings"

	"github.com/CrawX/go-guildhush/gateway"
	"github.com/CrawX/go-guildhush/guildhush"
	"github.com/CrawX/go-guildhush/hidden"
	"github.com/CrawX/go-guildhush/hook"
	"github.com/CrawX/go-guildhush/log"
	"github.com/CrawX/go-guildhush/persistence"
	"github.com/CrawX/go-guildhush/state"
	"github.com/CrawX/go-guildhush/visibility"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func engineConfig() []guildhush.ConfigFunc {
	configs := []guildhush.ConfigFunc{
		guildhush.Visibility(visibility.LogSink{L: log.Logger(log.LOG_ENGINE)}),
	}
	if !conf.SuppressionEnabled() {
		configs = append(configs, guildhush.SuppressionOff())
	}
	if conf.OnlyHideInStream {
		configs = append(configs, guildhush.OnlyHideInStream())
	}
	if !conf.HideInQuickSwitcher {
		configs = append(configs, guildhush.ShowInQuickSwitcher())
	}
	if conf.AutoClearMentions {
		configs = append(configs, guildhush.AutoClearMentions())
	}
	if conf.RateLimitedSuppression {
		configs = append(configs, guildhush.RateLimit(conf.MaxSuppressionsPerSecond))
	} else {
		configs = append(configs, guildhush.NoRateLimit())
	}
	return configs
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to the gateway and suppress events of hidden guilds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.Logger(log.LOG_MAIN)

			if err := conf.ValidateGateway(); err != nil {
				return err
			}

			p, err := persistence.NewPersistence(conf.Database)
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer p.Close()

			cache := state.NewCache()
			dispatchHook := hook.NewDispatch(cache)
			searchHook := hook.NewSearch(cache.SearchGuilds, cache.SearchChannels)

			engine, err := guildhush.NewEngine(cache, p, dispatchHook, searchHook, engineConfig()...)
			if err != nil {
				return fmt.Errorf("could not start engine: %w", err)
			}
			cache.OnStreamerModeChange(func(bool) { engine.StreamerModeChanged() })

			logger.WithFields(logrus.Fields{
				"suppression":      conf.SuppressionMode,
				"onlyhideinstream": conf.OnlyHideInStream,
				"quickswitcher":    conf.HideInQuickSwitcher,
				"autoclear":        conf.AutoClearMentions,
			}).Info("Starting")

			engine.Start()
			defer engine.Stop()

			client := gateway.NewClient(conf.Gateway, conf.Token, dispatchHook)
			err = client.Run(cmd.Context())

			stats := engine.Stats()
			logger.WithFields(logrus.Fields{
				"forwarded":   stats.Forwarded,
				"modified":    stats.Modified,
				"dropped":     stats.Dropped,
				"ratelimited": stats.RateLimited,
			}).Info("Stopping")

			return err
		},
	}
}

// openStore loads the hidden items without a session, folders cannot be resolved to guilds.
func openStore() (*hidden.Store, func(), error) {
	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to database: %w", err)
	}
	store := hidden.NewStore(nil, p)
	store.Load()
	return store, func() { p.Close() }, nil
}

func toggleCmd(use, short, kind string, toggle func(store *hidden.Store, id string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			hiddenNow, err := toggle(store, args[0])
			if err != nil {
				return err
			}

			status := "visible"
			if hiddenNow {
				status = "hidden"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", kind, args[0], status)
			return nil
		},
	}
}

func hideServerCmd() *cobra.Command {
	return toggleCmd("hide-server ID", "Toggle whether a guild is hidden", "server", (*hidden.Store).ToggleServer)
}

func hideFolderCmd() *cobra.Command {
	return toggleCmd("hide-folder ID", "Toggle whether a folder is hidden", "folder", (*hidden.Store).ToggleFolder)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hidden guilds and folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "servers: %s\n", strings.Join(store.Servers(), ", "))
			fmt.Fprintf(out, "folders: %s\n", strings.Join(store.Folders(), ", "))
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "clear servers|folders",
		Short:     "Unhide every guild or every folder",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"servers", "folders"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if args[0] == "servers" {
				err = store.ClearServers()
			} else {
				err = store.ClearFolders()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
			return nil
		},
	}
}
