package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/monotile/internal/config"
)

// Version is set at build time using -ldflags.
var Version = "development"

type options struct {
	configPath string
	host       string
	port       int
	variant    string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "monotile",
		Short:        "Serve the monotile explorer pages",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.BaseConfigFile, "path to the base configuration file")
	flags.StringVar(&opts.host, "host", "", "bind address")
	flags.IntVarP(&opts.port, "port", "p", 0, "listen port")
	flags.StringVar(&opts.variant, "variant", "", "route table variant")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "reload templates from disk and log at debug level")

	root.AddCommand(
		newRoutesCmd(opts),
		newVariantsCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the configuration file, finalizes it, and applies any
// flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}

	var o config.Override
	flags := cmd.Flags()
	if flags.Changed("host") {
		o.Host = &opts.host
	}
	if flags.Changed("port") {
		o.Port = &opts.port
	}
	if flags.Changed("variant") {
		o.Variant = &opts.variant
	}
	if flags.Changed("debug") {
		o.Debug = &opts.debug
	}
	if err := cfg.Override(&o); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	cfg.Version = Version
	return cfg, nil
}

func run(cfg *config.Config) error {
	srv, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("server init failed: %w", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := srv.Shutdown(cfg.Server.ShutdownTimeoutDuration()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
