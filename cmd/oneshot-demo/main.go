// oneshot-demo runs a screen whose producer emits one-time toast events that are handled by an EventEffect and kept
// in the saved state until they were consumed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/iotaledger/oneshot/configuration"
	"github.com/iotaledger/oneshot/effect"
	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/kvstore/database"
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/scope"
	"github.com/iotaledger/oneshot/runtime/syncutils"
	"github.com/iotaledger/oneshot/savedstate"
)

const appName = "oneshot-demo"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %+v\n", appName, err)
		os.Exit(1)
	}
}

// run executes the command line with the given arguments.
func run(ctx context.Context, args []string) error {
	rootCmd, err := newRootCommand(ctx)
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand creates the command that runs the demo screen and its subcommands.
func newRootCommand(ctx context.Context) (*cobra.Command, error) {
	config, flagSet, configFilePath, err := bindParameters()
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Shows one-time toast events that survive restarts until they were consumed",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return invoke(ctx, config, flagSet, *configFilePath, func(deps dependencies) error {
				return newScreen(deps).Run()
			})
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(flagSet)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Removes all saved events",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return invoke(ctx, config, flagSet, *configFilePath, func(deps dependencies) error {
				keys, err := deps.Registry.Keys()
				if err != nil {
					return err
				}

				deps.Logger.LogInfo("clearing saved state", "keys", keys)

				return deps.Registry.Clear()
			})
		},
	})

	return rootCmd, nil
}

// invoke builds the dependency graph and runs the given function with the resolved dependencies.
func invoke(ctx context.Context, config *configuration.Configuration, flagSet *flag.FlagSet, configFilePath string, runFunc func(deps dependencies) error) error {
	container := dig.New()

	if err := provide(ctx, container, config, flagSet, configFilePath); err != nil {
		return err
	}

	return container.Invoke(func(deps dependencies) error {
		defer func() {
			deps.Scope.Shutdown()

			if err := deps.Store.Close(); err != nil {
				deps.Logger.LogError("failed to close store", "err", err)
			}

			_ = deps.Logger.Sync()
		}()

		return runFunc(deps)
	})
}

type dependencies struct {
	dig.In

	Logger   log.Logger
	Store    kvstore.KVStore
	Registry *savedstate.Registry
	Scope    *scope.Scope
	Demo     *Parameters
	Effect   *effect.Parameters
}

// provide registers the constructors of the components in the container.
func provide(ctx context.Context, container *dig.Container, config *configuration.Configuration, flagSet *flag.FlagSet, configFilePath string) error {
	if err := container.Provide(func() (*configuration.Configuration, error) {
		return loadConfiguration(config, flagSet, configFilePath)
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide configuration")
	}

	if err := container.Provide(func(_ *configuration.Configuration) (*Parameters, *effect.Parameters) {
		return ParamsDemo, effect.ParamsEffect
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide parameters")
	}

	if err := container.Provide(func(_ *configuration.Configuration) (log.Logger, error) {
		return log.NewLoggerFromParameters(appName, log.ParamsLogger)
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide logger")
	}

	if err := container.Provide(func(_ *configuration.Configuration) (kvstore.KVStore, error) {
		return database.Open(database.ParamsDatabase)
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide store")
	}

	if err := container.Provide(func(store kvstore.KVStore, logger log.Logger) (*savedstate.Registry, error) {
		return savedstate.NewRegistry(store, savedstate.WithLogger(logger.NewChildLogger("SavedState")))
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide saved state registry")
	}

	if err := container.Provide(func(logger log.Logger) (*scope.Scope, error) {
		return scope.New(ctx, scope.WithName("screen"), scope.WithLogger(logger.NewChildLogger("Scope")))
	}); err != nil {
		return ierrors.Wrap(err, "failed to provide scope")
	}

	return nil
}

// bindParameters binds the parameters of all components to the flags of a new FlagSet.
func bindParameters() (config *configuration.Configuration, flagSet *flag.FlagSet, configFilePath *string, err error) {
	config = configuration.New()
	flagSet = configuration.NewUnsortedFlagSet(appName, flag.ContinueOnError)
	configFilePath = flagSet.StringP("config", "c", "config.json", "file path of the configuration file")

	for _, namespace := range []string{"demo", "effect", "logger", "database", "debug"} {
		if err = config.BindParameters(flagSet, namespace, parameters[namespace]); err != nil {
			return nil, nil, nil, ierrors.Wrapf(err, "failed to bind %s parameters", namespace)
		}
	}

	return config, flagSet, configFilePath, nil
}

// loadConfiguration loads the bound parameters from the config file, the environment and the parsed command line.
func loadConfiguration(config *configuration.Configuration, flagSet *flag.FlagSet, configFilePath string) (*configuration.Configuration, error) {
	if err := config.LoadFile(configFilePath); err != nil && !ierrors.Is(err, configuration.ErrConfigDoesNotExist) {
		return nil, err
	}

	// load the flags to set the default values
	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, ierrors.Wrap(err, "failed to load flags")
	}

	if err := config.LoadEnvironmentVars("ONESHOT"); err != nil {
		return nil, ierrors.Wrap(err, "failed to load environment variables")
	}

	// load the flags again to overwrite env vars that were also set via command line
	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, ierrors.Wrap(err, "failed to load flags")
	}

	config.UpdateBoundParameters()
	syncutils.ApplyParameters(syncutils.ParamsSyncUtils)

	return config, nil
}
