package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cellar-club/tasting/internal/aggregate"
	"github.com/cellar-club/tasting/internal/app"
	"github.com/cellar-club/tasting/internal/config"
	"github.com/cellar-club/tasting/internal/models"
	"github.com/cellar-club/tasting/internal/modules/tasting"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	out        io.Writer
	configPath string
	pretty     bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "tastingctl",
		Short:         "Inspect and feed the wine tasting record store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultConfigPath, "Path to YAML config file")
	root.PersistentFlags().BoolVar(&c.pretty, "pretty", false, "Pretty-print JSON output")

	root.AddCommand(c.schemaCmd(), c.recordsCmd(), c.statsCmd(), c.submitCmd())
	return root
}

// withStore loads config, opens the backend and runs fn against it. Only
// writing commands pass ensure, so reads never touch the header row.
func (c *cli) withStore(ctx context.Context, ensure bool, fn func(b *app.Backend, cfg *config.AppConfig) error) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	backend, err := app.OpenBackend(ctx, cfg, zap.NewNop())
	if err != nil {
		return fmt.Errorf("record store: %w", err)
	}
	defer backend.Close()

	if ensure {
		if _, err := backend.Store.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return fn(backend, cfg)
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	if c.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (c *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Check the header row and write it when the sheet is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), false, func(b *app.Backend, _ *config.AppConfig) error {
				action, err := b.Store.EnsureSchema(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(c.out, "schema %s\n", action)
				return err
			})
		},
	}
}

func (c *cli) recordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print every record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), false, func(b *app.Backend, _ *config.AppConfig) error {
				records, err := b.Store.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				return c.printJSON(records)
			})
		},
	}
}

type statsOutput struct {
	Selection         aggregate.Selection    `json:"selection"`
	Histogram         aggregate.Histogram    `json:"histogram"`
	OverallMean       *float64               `json:"overall_mean"`
	UserMean          *float64               `json:"user_mean,omitempty"`
	UserRatings       []int                  `json:"user_ratings,omitempty"`
	Tastes            []aggregate.TasteCount `json:"tastes"`
	UnknownCategories int                    `json:"unknown_categories"`
}

func (c *cli) statsCmd() *cobra.Command {
	var wine, user string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the rating histogram, means and taste frequencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), false, func(b *app.Backend, _ *config.AppConfig) error {
				records, err := b.Store.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				sel := aggregate.NewSelection(wine, user, models.CategoryRating)
				view := aggregate.BuildRatingView(records, sel)
				out := statsOutput{
					Selection:         sel,
					Histogram:         view.Histogram,
					OverallMean:       view.OverallMean,
					UserMean:          view.UserMean,
					Tastes:            aggregate.BuildTasteView(records, sel).Frequencies,
					UnknownCategories: len(aggregate.Partition(records).Unknown),
				}
				if !sel.AllUsers() {
					out.UserRatings = view.UserRatings.Sorted()
				}
				return c.printJSON(out)
			})
		},
	}
	cmd.Flags().StringVar(&wine, "wine", aggregate.AllWines, "Wine to filter on")
	cmd.Flags().StringVar(&user, "user", aggregate.AllUsers, "User to single out")
	return cmd
}

func (c *cli) submitCmd() *cobra.Command {
	var dto tasting.SubmitDTO
	var rating int
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a rating and tasting notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("rating") {
				dto.Rating = &rating
			}
			return c.withStore(cmd.Context(), true, func(b *app.Backend, cfg *config.AppConfig) error {
				svc := tasting.NewService(b.Store, nil, cfg.Wines, nil)
				res, err := svc.Submit(cmd.Context(), dto)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, res.Message)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&dto.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&dto.Wine, "wine", "", "Wine being rated")
	cmd.Flags().IntVar(&rating, "rating", tasting.DefaultRating, "Rating from 1 to 10")
	cmd.Flags().StringVar(&dto.Notes, "notes", "", "Tasting notes, one per line")
	return cmd
}
