package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/monotile/web/app"
)

func newRoutesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table of the selected variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			views, err := app.Views(cfg.App.Variant)
			if err != nil {
				return err
			}
			sort.Slice(views, func(i, j int) bool {
				return views[i].Route < views[j].Route
			})

			out := cmd.OutOrStdout()
			for _, v := range views {
				fmt.Fprintf(out, "GET %s -> %s\n", v.Route, v.Name())
			}
			return nil
		},
	}
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the available route table variants",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range app.Variants() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of monotile",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "monotile version:", Version)
		},
	}
}
