package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leofalp/fieldex/providers/source"
)

var extractFlags struct {
	schema   string
	source   string
	overview bool
	rawHTML  bool
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a record from a document",
	Long: "Extract a record of the given schema from a file, URL or literal text.\n" +
		"Without --source the document is read from stdin.",
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractFlags.schema, "schema", "", "Schema name from the catalogue (required)")
	f.StringVar(&extractFlags.source, "source", "", "File path, http(s) URL or literal text")
	f.BoolVar(&extractFlags.overview, "overview", false, "Include the session overview in the output")
	f.BoolVar(&extractFlags.rawHTML, "raw-html", false, "Do not convert HTML sources to Markdown")

	_ = extractCmd.MarkFlagRequired("schema")
}

func runExtract(cmd *cobra.Command, _ []string) error {
	entry, err := loadEntry(extractFlags.schema)
	if err != nil {
		return err
	}

	prompt, err := readSource(cmd, extractFlags.source, extractFlags.rawHTML)
	if err != nil {
		return err
	}

	extraction, err := newExtractor().Extract(cmd.Context(), entry, prompt)
	if err != nil {
		return fmt.Errorf("extract %s: %w", entry.Schema.Name, err)
	}

	var out any = extraction.Record
	if extractFlags.overview {
		out = map[string]any{
			"record":   extraction.Record,
			"overview": extraction.Overview,
		}
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s record: %w", entry.Schema.Name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

// readSource loads ref through the source loader, or reads stdin when ref
// is empty.
func readSource(cmd *cobra.Command, ref string, rawHTML bool) (string, error) {
	if ref == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		ref = string(data)
	}

	var opts []source.Option
	if rawHTML {
		opts = append(opts, source.WithRawHTML())
	}
	doc, err := source.NewLoader(opts...).Load(cmd.Context(), ref)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
