package main

import (
	"fmt"
	"strings"

	"github.com/amirasaad/fxconv/pkg/cache"
	"github.com/spf13/cobra"
)

func newCacheCmd(load depsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local rate cache",
	}
	cmd.AddCommand(newCacheClearCmd(load))
	return cmd
}

func newCacheClearCmd(load depsLoader) *cobra.Command {
	valid := make([]string, 0, len(cache.Namespaces()))
	for _, ns := range cache.Namespaces() {
		valid = append(valid, string(ns))
	}

	return &cobra.Command{
		Use:       "clear [" + strings.Join(valid, "|") + "]",
		Short:     "Remove cached records, all of them or one namespace",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ns cache.Namespace
			if len(args) == 1 {
				ns = cache.Namespace(args[0])
			}

			deps, err := load()
			if err != nil {
				return err
			}
			defer deps.Close() //nolint:errcheck

			if err := deps.Store.Clear(cmd.Context(), ns); err != nil {
				return err
			}

			what := "all"
			if ns != "" {
				what = string(ns)
			}
			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Cleared %s cached records", what))
			return nil
		},
	}
}
