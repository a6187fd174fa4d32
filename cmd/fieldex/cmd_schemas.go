package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leofalp/fieldex/core/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the schemas in the catalogue",
	RunE:  runSchemas,
}

func runSchemas(cmd *cobra.Command, _ []string) error {
	reg, err := schema.LoadRegistry(cfg.Catalogue)
	if err != nil {
		return err
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Schema", "Fields", "Time pairs", "Cases", "Description"})
	for _, name := range reg.Names() {
		entry, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		sc := entry.Schema
		pairs := make([]string, len(sc.TimePairs))
		for i, p := range sc.TimePairs {
			pairs[i] = p.Start + "/" + p.End
		}
		w.AppendRow(table.Row{name, strings.Join(sc.Names(), ", "), strings.Join(pairs, ", "), len(entry.GroundTruth), sc.Description})
	}
	fmt.Fprintln(cmd.OutOrStdout(), w.Render())
	return nil
}
