package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcparts/catalog/internal/client"
	"github.com/pcparts/catalog/internal/logger"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load dictionaries and components from a YAML seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := client.LoadSeedFile(file)
			if err != nil {
				return err
			}
			level := "info"
			if opts.debug {
				level = "debug"
			}
			log := logger.NewWithWriter(os.Stderr, "catalogctl", level)
			res, err := client.NewSeeder(opts.client(), log).Seed(cmd.Context(), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
