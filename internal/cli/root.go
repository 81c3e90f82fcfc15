// Package cli exposes the recipes runtime as cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/preview"
	"github.com/samvad-hq/samvad-recipes/pkg/publishers"
	"github.com/spf13/cobra"
)

// Runtime is the application surface the commands drive.
type Runtime interface {
	Fetch(ctx context.Context) ([]domain.Recipe, error)
	Refresh(ctx context.Context) ([]domain.Recipe, error)
	Preview(ctx context.Context, ids ...string) ([]preview.Preview, error)
	Publish(ctx context.Context, trigger string, list []domain.Recipe) error
	Watch(ctx context.Context) error
	Serve(ctx context.Context) error
	Close() error
}

// Factory builds the runtime lazily so --help never touches config or network.
type Factory func(ctx context.Context) (Runtime, error)

type rootOptions struct {
	output  string
	cuisine string
	publish bool
}

// NewRootCommand assembles the recipes command tree.
func NewRootCommand(factory Factory) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "recipes",
		Short: "Fetch, cache and publish the recipe catalog",
		Long: `Fetch the recipe catalog over HTTP, validate every record and keep the
last complete batch in memory. The catalog can be printed, watched on an
interval and fanned out to HTTP, SQS, SNS or Pub/Sub sinks, or served over a
small read-only API.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatTable, "output format: table, json or yaml")

	with := func(run func(cmd *cobra.Command, rt Runtime, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			if err := validateFormat(opts.output); err != nil {
				return err
			}
			rt, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil {
					err = errors.Join(err, fmt.Errorf("close runtime: %w", cerr))
				}
			}()
			return run(cmd, rt, args)
		}
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print the catalog, served from cache when available",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, rt Runtime, _ []string) error {
			list, err := rt.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return renderRecipes(cmd.OutOrStdout(), opts.output, domain.FilterByCuisine(list, opts.cuisine))
		}),
	}
	fetchCmd.Flags().StringVar(&opts.cuisine, "cuisine", "", "only show recipes of this cuisine")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Reload the catalog from the network",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, rt Runtime, _ []string) error {
			list, err := rt.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if opts.publish {
				if err := rt.Publish(cmd.Context(), publishers.TriggerRefresh, list); err != nil {
					return fmt.Errorf("publish catalog: %w", err)
				}
			}
			return renderRecipes(cmd.OutOrStdout(), opts.output, list)
		}),
	}
	refreshCmd.Flags().BoolVar(&opts.publish, "publish", false, "send the refreshed catalog to configured publishers")

	cuisinesCmd := &cobra.Command{
		Use:   "cuisines",
		Short: "List the cuisines present in the catalog",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, rt Runtime, _ []string) error {
			list, err := rt.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return renderCuisines(cmd.OutOrStdout(), opts.output, domain.Cuisines(list))
		}),
	}

	previewCmd := &cobra.Command{
		Use:   "preview [uuid...]",
		Short: "Show link previews scraped from recipe source pages",
		RunE: with(func(cmd *cobra.Command, rt Runtime, args []string) error {
			previews, err := rt.Preview(cmd.Context(), args...)
			if err != nil {
				return err
			}
			return renderPreviews(cmd.OutOrStdout(), opts.output, previews)
		}),
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh on the configured interval and publish every fresh catalog",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, rt Runtime, _ []string) error {
			return rt.Watch(cmd.Context())
		}),
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, rt Runtime, _ []string) error {
			return rt.Serve(cmd.Context())
		}),
	}

	root.AddCommand(fetchCmd, refreshCmd, cuisinesCmd, previewCmd, watchCmd, serveCmd)
	return root
}
