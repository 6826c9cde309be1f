package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect the persisted selection snapshot",
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted categories as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		cats := st.Load(cmd.Context())
		if len(cats) == 0 {
			fmt.Fprintln(os.Stderr, "no snapshot stored under", st.Key())
			return nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cats)
	},
}

var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		if err := st.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Snapshot cleared:", st.Key())
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)
}
