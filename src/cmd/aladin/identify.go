package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aladin/src/internal/plugin"
	"aladin/src/internal/schema"
)

func newIdentifyCmd() *cobra.Command {
	var f lookupFlags
	var format string
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Search the catalog and print matching records",
		Example: `  aladin identify --isbn13 9788936434267
  aladin identify --title 선자 --author 이민진 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			src, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			abort, stop := abortOnDone(cmd.Context())
			defer stop()

			var results plugin.SliceQueue[schema.Record]
			if err := src.Identify(cmd.Context(), log, &results, abort, f.request()); err != nil {
				return err
			}
			recs := results.Items()
			if len(recs) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no results")
				return nil
			}
			return writeRecords(cmd.OutOrStdout(), format, recs)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func writeRecords(w io.Writer, format string, recs []schema.Record) error {
	if format == "json" {
		b, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return err
	}
	return enc.Close()
}
