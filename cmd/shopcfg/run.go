package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/shopcfg/internal/catalog"
	"github.com/mark3labs/shopcfg/internal/flow"
	"github.com/mark3labs/shopcfg/internal/locale"
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/review"
	"github.com/mark3labs/shopcfg/internal/shuffle"
	"github.com/mark3labs/shopcfg/internal/tabs"
	"github.com/mark3labs/shopcfg/internal/tui"
	"github.com/spf13/cobra"
)

var runFlags struct {
	catalog string
	seed    int64
	review  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive configurator",
	Long: `Start the interactive configurator.

The selection screen shows one tab per catalog category in random order.
Checkout is enabled once every category has a choice. The review screen
compares the first options of each category and saves the selection.

Use --review to reopen the review screen from the persisted snapshot.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.catalog, "catalog", "c", "", "Catalog YAML file (default: built-in catalog)")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0, "Shuffle seed, 0 for random")
	runCmd.Flags().BoolVar(&runFlags.review, "review", false, "Open the review screen from the persisted snapshot")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	override(&cfg.Catalog, runFlags.catalog)
	if cmd.Flags().Changed("seed") {
		cfg.Seed = runFlags.seed
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}()

	doc := cat.Build()
	f := flow.New(flow.Deps{
		Doc:     doc,
		Tabs:    tabs.New(doc, shuffle.New(cfg.Seed)),
		Store:   st,
		Review:  review.New(st, cfg.ReviewLimit),
		Gateway: newGateway(cfg),
		Text:    locale.New(cfg.Locale),
	})
	logger.Info("starting flow: %d categories, store=%s, endpoint=%s", len(cat.Categories), cfg.Store, cfg.Endpoint)

	app := tui.New(ctx, f, cat.Title)
	if runFlags.review {
		f.EnterReview(ctx)
	}
	if err := tui.Run(ctx, app); err != nil {
		return err
	}
	if f.Screen() == flow.Done {
		fmt.Println(f.Text.T(locale.DoneBody))
	}
	return nil
}
