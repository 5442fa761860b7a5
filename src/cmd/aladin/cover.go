package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aladin/src/internal/plugin"
)

var errNoCover = errors.New("no cover found")

var coverExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

func newCoverCmd() *cobra.Command {
	var f lookupFlags
	var out string
	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Download the largest available cover image",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			abort, stop := abortOnDone(cmd.Context())
			defer stop()

			var covers plugin.SliceQueue[plugin.Cover]
			src.DownloadCover(cmd.Context(), log, &covers, abort, f.request(), true)
			got := covers.Items()
			if len(got) == 0 {
				return errNoCover
			}
			c := got[0]
			path := out
			if path == "" {
				ext, ok := coverExt[c.ContentType]
				if !ok {
					ext = ".img"
				}
				path = "cover" + ext
			}
			if err := os.WriteFile(path, c.Data, 0o644); err != nil {
				return fmt.Errorf("write cover: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes from %s)\n", path, len(c.Data), c.URL)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output file (default cover.<ext>)")
	return cmd
}
