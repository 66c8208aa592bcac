// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelosalatino/dblp-parser/internal/report"
	"github.com/angelosalatino/dblp-parser/internal/sink"
	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

var parseCmd = &cobra.Command{
	Use:   "parse <dump.xml>",
	Short: "Extract records from a DBLP dump",
	Long: `Parse streams the dump once and writes one record per publication
element. The default output is a JSON Lines file next to the input; --format
selects a SQLite database or an in-memory table instead (the table is
printed as a column overview and is only sensible for moderate dumps).

--features restricts extraction to a comma-separated subset of the field
catalog (see the features command); unrecognized names are ignored with a
warning. --year keeps only records published in the given year.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "output path (default: input path with the format's extension)")
	parseCmd.Flags().String("format", "", "output format: jsonl, table, or sqlite (default: jsonl)")
	parseCmd.Flags().StringSlice("features", nil, "fields to extract (default: all)")
	parseCmd.Flags().Bool("include-key-mdate", false, "include the key and mdate attributes in each record")
	parseCmd.Flags().String("year", "", "only emit records whose year equals this value")
	parseCmd.Flags().Bool("summary", false, "write a run summary next to the output")
	parseCmd.Flags().String("summary-format", "yaml", "summary format: yaml or json")
	parseCmd.Flags().Int("progress-every", 100000, "print progress every N records (0 disables)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = viper.GetString("format")
	}
	if format == "" {
		format = "jsonl"
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutput(input, format)
	}

	features, _ := cmd.Flags().GetStringSlice("features")
	includeKeyMdate, _ := cmd.Flags().GetBool("include-key-mdate")
	year, _ := cmd.Flags().GetString("year")
	progressEvery, _ := cmd.Flags().GetInt("progress-every")

	parser, err := dblp.New(input, dblp.Options{
		Features:        features,
		IncludeKeyMdate: includeKeyMdate,
		Year:            year,
		Diagnostics:     os.Stderr,
	})
	if err != nil {
		return err
	}
	defer parser.Close()

	out, table, err := openSink(format, output)
	if err != nil {
		return err
	}

	summary := report.New(input, output, format)
	summary.Features = selectedFeatures(features)
	summary.IncludeKeyMdate = includeKeyMdate
	summary.Year = year

	if err := drain(parser, out, summary, progressEvery, os.Stderr); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	summary.Finish()

	if table != nil {
		printTable(table, os.Stdout)
	} else {
		fmt.Fprintf(os.Stdout, "Parsed %s records from %s into %s in %s\n",
			humanize.Comma(int64(summary.Records)), input, output, summary.Duration)
	}

	if wantSummary, _ := cmd.Flags().GetBool("summary"); wantSummary {
		return writeSummary(cmd, summary, output)
	}
	return nil
}

// drain pumps records from the parser into the sink until the dump is
// exhausted, counting them into the summary.
func drain(parser *dblp.Parser, out sink.Sink, summary *report.Summary, progressEvery int, diag io.Writer) error {
	for {
		rec, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing dump: %w", err)
		}

		if err := out.Write(rec); err != nil {
			return err
		}
		summary.Add(rec)

		if progressEvery > 0 && summary.Records%progressEvery == 0 {
			fmt.Fprintf(diag, "processed %s records\n", humanize.Comma(int64(summary.Records)))
		}
	}
}

// openSink builds the sink for the requested format. For the table format
// the *sink.Table is also returned so the caller can print it afterwards.
func openSink(format, output string) (sink.Sink, *sink.Table, error) {
	switch format {
	case "jsonl":
		s, err := sink.NewJSONL(output)
		return s, nil, err
	case "sqlite":
		s, err := sink.NewSQLite(output)
		return s, nil, err
	case "table":
		t := sink.NewTable()
		return t, t, nil
	}
	return nil, nil, fmt.Errorf("unknown format %q: expected jsonl, table, or sqlite", format)
}

// defaultOutput derives the output path from the input path and format.
func defaultOutput(input, format string) string {
	base := strings.TrimSuffix(input, ".gz")
	base = strings.TrimSuffix(base, ".xml")
	switch format {
	case "sqlite":
		return base + ".db"
	case "table":
		return ""
	}
	return base + ".jsonl"
}

// selectedFeatures reports what the parser will actually extract, for the
// run summary.
func selectedFeatures(requested []string) []string {
	if len(requested) == 0 {
		return dblp.Features()
	}
	var kept []string
	all := make(map[string]bool)
	for _, f := range dblp.Features() {
		all[f] = true
	}
	for _, f := range requested {
		if all[f] {
			kept = append(kept, f)
		}
	}
	return kept
}

func printTable(t *sink.Table, w io.Writer) {
	fmt.Fprintf(w, "%d records, %d columns\n\n", t.Len(), len(t.Columns()))
	fmt.Fprintf(w, "%-12s  %s\n", "Column", "Populated rows")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	for _, name := range t.Columns() {
		populated := 0
		for _, cell := range t.Column(name) {
			if cell != nil {
				populated++
			}
		}
		fmt.Fprintf(w, "%-12s  %d\n", name, populated)
	}
}

func writeSummary(cmd *cobra.Command, summary *report.Summary, output string) error {
	summaryFormat, _ := cmd.Flags().GetString("summary-format")

	base := output
	if base == "" {
		base = strings.TrimSuffix(summary.Input, ".gz")
	}
	switch summaryFormat {
	case "yaml":
		return summary.WriteYAML(base + ".summary.yaml")
	case "json":
		return summary.WriteJSON(base + ".summary.json")
	}
	return fmt.Errorf("unknown summary format %q: expected yaml or json", summaryFormat)
}
