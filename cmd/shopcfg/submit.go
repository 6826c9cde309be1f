package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/shopcfg/internal/locale"
	"github.com/mark3labs/shopcfg/internal/store"
	"github.com/spf13/cobra"
)

var submitFlags struct {
	keep bool
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Post the persisted snapshot to the save endpoint",
	Long: `Post the persisted snapshot to the save endpoint without the TUI.

The snapshot is cleared after a successful save unless --keep is given. On
failure the snapshot is left untouched so the command can be retried.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().BoolVar(&submitFlags.keep, "keep", false, "Keep the snapshot after a successful save")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	text := locale.New(cfg.Locale)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	cats := st.Load(ctx)
	if len(cats) == 0 {
		return errors.New(text.T(locale.NoSelection))
	}
	for _, c := range cats {
		if !c.Resolved() {
			return fmt.Errorf("%s: %s", text.T(locale.Incomplete), c.Title)
		}
	}

	resp, err := newGateway(cfg).Submit(ctx, st.SnapshotID(), cats)
	if err != nil {
		return fmt.Errorf("%s: %w", text.T(locale.SaveFailed), err)
	}
	if !submitFlags.keep {
		if err := st.Clear(ctx); err != nil {
			return err
		}
	}

	fmt.Println(text.T(locale.DoneBody))
	printSelection(cats)
	if resp != nil {
		fmt.Printf("response: %v\n", resp)
	}
	return nil
}

func printSelection(cats []store.Category) {
	for _, c := range cats {
		v, _ := c.Selected()
		for _, o := range c.Options {
			if o.Value == v {
				fmt.Printf("  %s: %s\n", c.Title, o.Title)
			}
		}
	}
}
