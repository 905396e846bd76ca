package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// createListCommand creates the list subcommand
func (a *App) createListCommand() *cobra.Command {
	var (
		name, typ, weakness string
		height, weight      string
		from, to            int
		sortDir             string
		page, pageSize      int
	)

	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List the roster, filtered, sorted and paginated",
		Long: `List one page of the roster.

Height and weight accept a bucket name or a "min-max" range:
  height: short (0-1 m), medium (1-2 m), tall (2-100 m)
  weight: light (0-10 kg), medium (10-50 kg), heavy (50-999 kg)

A Pokémon matches a bucket when its own height or weight range overlaps it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, logger, err := a.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()
			defer func() { _ = logger.Sync() }()

			q := client.Query().
				Name(name).
				Type(typ).
				Weakness(weakness).
				Height(height).
				Weight(weight).
				Page(page).
				PageSize(pageSize)
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				q = q.Range(from, to)
			}
			switch sortDir {
			case "asc", "":
			case "desc":
				q = q.Descending()
			default:
				return fmt.Errorf("--sort must be asc or desc, got %q", sortDir)
			}

			res, err := q.Do(ctx)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors carry their own prefix
			}
			logger.Debug("listed", zap.Int("total", res.Total), zap.Int("page", res.Page))
			_, err = fmt.Fprint(cmd.OutOrStdout(), RenderList(res))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "Case-insensitive name substring")
	flags.StringVar(&typ, "type", "", "Elemental type, e.g. Fire")
	flags.StringVar(&weakness, "weakness", "", "Weakness, e.g. Water")
	flags.StringVar(&height, "height", "", "Height bucket (short, medium, tall) or min-max")
	flags.StringVar(&weight, "weight", "", "Weight bucket (light, medium, heavy) or min-max")
	flags.IntVar(&from, "from", 1, "Lowest ordinal")
	flags.IntVar(&to, "to", 151, "Highest ordinal")
	flags.StringVar(&sortDir, "sort", "asc", "Ordinal order: asc or desc")
	flags.IntVarP(&page, "page", "p", 1, "Page number")
	flags.IntVar(&pageSize, "page-size", 0, "Items per page (default 9)")

	return cmd
}

// createShowCommand creates the show subcommand
func (a *App) createShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one Pokémon with its stat gauges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, logger, err := a.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()
			defer func() { _ = logger.Sync() }()

			d, err := client.Get(ctx, args[0])
			if err != nil {
				return err //nolint:wrapcheck // SDK errors carry their own prefix
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), RenderDetail(d))
			return err
		},
	}
}

// createDashboardCommand creates the dashboard subcommand
func (a *App) createDashboardCommand() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "dashboard [flags]",
		Short: "Show the radar profile of one roster entry",
		Long: `Show the eight-axis radar profile, the strongest and weakest stat and a
battle role recommendation. The index wraps around the roster in both directions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, logger, err := a.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()
			defer func() { _ = logger.Sync() }()

			d, err := client.Dashboard(ctx, index)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors carry their own prefix
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), RenderDashboard(d))
			return err
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Roster position (0-based, wraps)")
	return cmd
}

// createFacetsCommand creates the facets subcommand
func (a *App) createFacetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "List the types, weaknesses and size buckets to filter by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, logger, err := a.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()
			defer func() { _ = logger.Sync() }()

			f, err := client.Facets(ctx)
			if err != nil {
				return err //nolint:wrapcheck // SDK errors carry their own prefix
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), RenderFacets(f))
			return err
		},
	}
}
