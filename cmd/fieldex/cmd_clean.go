package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leofalp/fieldex/core/merge"
	"github.com/leofalp/fieldex/core/parse"
	"github.com/leofalp/fieldex/internal/utils"
)

var cleanFlags struct {
	schema string
	repair bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean [fragment]",
	Short: "Sanitise, classify and parse a fragment",
	Long: "Run one generator fragment through the sanitiser, the classifier and the\n" +
		"partial parser and print each stage. The fragment is taken from the\n" +
		"argument or, when absent, from stdin. With --schema the parsed object is\n" +
		"also converted to a post-processed record.",
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVar(&cleanFlags.schema, "schema", "", "Schema to build a record for")
	f.BoolVar(&cleanFlags.repair, "repair", false, "Enable the jsonrepair stage of the parser")
}

func runClean(cmd *cobra.Command, args []string) error {
	var fragment string
	if len(args) == 1 {
		fragment = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		fragment = string(data)
	}

	var opts []parse.Option
	if cleanFlags.repair {
		opts = append(opts, parse.WithRepair())
	}

	out := cmd.OutOrStdout()
	cleaned := parse.CleanJSONStr(fragment)
	fmt.Fprintf(out, "cleaned:   %s\n", cleaned)
	fmt.Fprintf(out, "json-like: %t\n", parse.IsJSONLike(cleaned))

	obj, ok := parse.ParsePartialJSON(cleaned, opts...)
	if !ok {
		fmt.Fprintln(out, "parsed:    <unparseable>")
		return nil
	}
	fmt.Fprintf(out, "parsed:    %s\n", utils.JSONToString(obj))

	if cleanFlags.schema == "" {
		return nil
	}
	entry, err := loadEntry(cleanFlags.schema)
	if err != nil {
		return err
	}
	record, _ := parse.GetPartialJSON(cleaned, entry.Schema, opts...)
	record = merge.PostProcessModel(record)
	fmt.Fprintf(out, "record:    %s\n", utils.JSONToString(record))
	return nil
}
