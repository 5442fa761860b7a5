package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aladin/src/internal/config"
)

func newInfoCmd() *cobra.Command {
	var env bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the configured source, or the environment it reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if env {
				fmt.Fprintln(cmd.OutOrStdout(), config.Usage())
				return nil
			}
			src, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			b, err := yaml.Marshal(src.Info())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().BoolVar(&env, "env", false, "list the environment variables the config reads")
	return cmd
}
