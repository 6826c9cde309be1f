package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mark3labs/shopcfg/internal/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogFlags struct {
	dump bool
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [file]",
	Short: "Validate and list a catalog",
	Long: `Validate a catalog file and list its categories.

Without a file the built-in catalog is used. Derived panel ids are shown, so
the output can be used to check the keys that end up in snapshots. Use --dump
to print the normalized catalog as YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogFlags.dump, "dump", false, "Print the normalized catalog as YAML")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	if catalogFlags.dump {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cat)
	}

	fmt.Println(cat.Title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTITLE\tOPTIONS")
	for _, c := range cat.Categories {
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.ID, c.Title, len(c.Options))
	}
	return w.Flush()
}
