package main

import (
	"errors"

	"github.com/amirasaad/fxconv/infra/initializer"
	"github.com/amirasaad/fxconv/pkg/money"
	service "github.com/amirasaad/fxconv/pkg/service/exchange"
	"github.com/spf13/cobra"
)

type depsLoader func() (*initializer.Deps, error)

type convertOptions struct {
	source  string
	targets string
	amount  float64
	force   bool
	list    bool
}

func newRootCmd(load depsLoader) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "fxconv -s SOURCE -t TARGET[,TARGET...] -a AMOUNT",
		Short: "Simple cli currency converter",
		Long: "Convert an amount between currencies using the latest rates.\n" +
			"Rates are cached per hour and the currency list per day.",
		Example: "  fxconv -s PLN -t USD,EUR -a 12.123\n" +
			"  fxconv -s EUR --list\n" +
			"  fxconv cache clear rates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, load, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.source, "source", "s", "", "source currency code e.g. EUR")
	flags.StringVarP(&opts.targets, "targets", "t", "", "target currency codes e.g. USD,PLN,EUR")
	flags.Float64VarP(&opts.amount, "amount", "a", 0, "amount to convert from source currency to target currency")
	flags.BoolVarP(&opts.force, "force", "f", false, "fetch the currency list even when it is cached")
	flags.BoolVarP(&opts.list, "list", "l", false, "list every exchange rate for the source currency")

	cmd.AddCommand(newCacheCmd(load))
	return cmd
}

func runConvert(cmd *cobra.Command, load depsLoader, opts *convertOptions) (err error) {
	source := money.NormalizeCode(opts.source)
	if source == "" {
		return errors.New("source currency is required (-s)")
	}
	targets := money.ParseCodes(opts.targets)
	if !opts.list && len(targets) == 0 {
		return errors.New("at least one target currency is required (-t)")
	}

	deps, err := load()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil {
			deps.Logger.Warn("Failed to release dependencies", "error", cerr)
		}
	}()

	ctx := cmd.Context()
	out := newPrinter(cmd.OutOrStdout())

	if opts.list {
		listing, err := deps.Converter.List(ctx, source, opts.force)
		if err != nil {
			return err
		}
		out.listing(listing)
		return nil
	}

	conversions, err := deps.Converter.Convert(ctx, service.Request{
		Source:  source,
		Targets: targets,
		Amount:  opts.amount,
		Force:   opts.force,
	})
	out.conversions(conversions)
	return err
}
