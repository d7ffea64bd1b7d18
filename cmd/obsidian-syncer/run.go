package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/JayanAXHF/obsidian-syncer/cmd"
	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
	"github.com/JayanAXHF/obsidian-syncer/pkg/syncer"
	"github.com/JayanAXHF/obsidian-syncer/pkg/vault"
	"github.com/JayanAXHF/obsidian-syncer/pkg/watch"
)

var runConfiguration commonFlags

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Watch open vaults and synchronize them continuously",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(runMain),
}

func init() {
	flags := runCommand.Flags()
	flags.StringVar(&runConfiguration.registryPath, "registry", "", "path to the Obsidian vault registry (obsidian.json)")
	flags.StringVar(&runConfiguration.configPath, "config", "", "path to the obsidian-syncer configuration file")
}

func runMain(command *cobra.Command, arguments []string) error {
	config, err := loadConfig(runConfiguration)
	if err != nil {
		return err
	}

	registryPath, err := runConfiguration.resolveRegistryPath()
	if err != nil {
		return err
	}

	logger := logging.RootLogger.Sublogger("run")
	opts := syncerOptions(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, cmd.TerminationSignals...)
	go func() {
		<-signals
		logger.Print("Received termination signal, shutting down")
		cancel()
	}()

	watcher := &daemon{
		ctx:          ctx,
		logger:       logger,
		registryPath: registryPath,
		opts:         opts,
	}

	return watcher.run()
}

// daemon coordinates the long-running "run" subcommand: it watches the
// vault registry for changes to the set of open vaults, and for every open
// vault, watches its plugin directory and triggers a synchronization pass
// whenever plugin files change elsewhere.
type daemon struct {
	ctx          context.Context
	logger       *logging.Logger
	registryPath string
	opts         syncer.Options
}

func (d *daemon) run() error {
	registrySignals, err := watch.WatchVaultSet(d.ctx, d.registryPath, d.logger)
	if err != nil {
		return err
	}

	var cancelWatchers func()

	restart := func() {
		if cancelWatchers != nil {
			cancelWatchers()
		}

		set, err := vault.Load(d.registryPath)
		if err != nil {
			d.logger.Warnf("Unable to reload vault registry: %s", err.Error())
			cancelWatchers = nil
			return
		}

		watchCtx, cancel := context.WithCancel(d.ctx)
		cancelWatchers = cancel
		d.watchOpenVaults(watchCtx, set.OpenVaults())
	}

	restart()

	for {
		select {
		case <-d.ctx.Done():
			if cancelWatchers != nil {
				cancelWatchers()
			}
			return nil
		case _, ok := <-registrySignals:
			if !ok {
				return nil
			}
			d.logger.Print("Vault registry changed, reloading open vault set")
			restart()
		}
	}
}

// watchOpenVaults starts one plugin-directory watcher per open vault and
// triggers a full SyncVaults pass across all of them whenever any one
// reports a change. It returns immediately; the watchers run until ctx is
// canceled.
func (d *daemon) watchOpenVaults(ctx context.Context, openVaults []vault.Vault) {
	if len(openVaults) < 2 {
		d.logger.Print("Fewer than two vaults are open; idling until the registry changes")
		return
	}

	changes := make(chan struct{}, len(openVaults))

	for _, v := range openVaults {
		v := v
		pluginChanges, err := watch.WatchPlugins(ctx, v.Path, d.opts.IgnorePatterns, d.logger)
		if err != nil {
			d.logger.Warnf("Unable to watch plugins for %q: %s", v.Path, err.Error())
			continue
		}

		go func() {
			for range pluginChanges {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}()
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				d.syncAll(ctx, openVaults)
			}
		}
	}()
}

func (d *daemon) syncAll(ctx context.Context, openVaults []vault.Vault) {
	for i, source := range openVaults {
		destinations := make([]vault.Vault, 0, len(openVaults)-1)
		for j, candidate := range openVaults {
			if j != i {
				destinations = append(destinations, candidate)
			}
		}

		report, err := syncer.SyncVaults(ctx, source, destinations, d.logger, d.opts)
		if err != nil {
			d.logger.Warnf("Synchronization pass from %q failed: %s", source.Path, err.Error())
			continue
		}
		if report.FilesChanged > 0 {
			d.logger.Printf("%s: %s", source.Path, report.String())
		}
	}
}
