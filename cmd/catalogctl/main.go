package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcparts/catalog/internal/client"
)

type rootOptions struct {
	api     string
	timeout time.Duration
	debug   bool
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.api, client.WithTimeout(o.timeout), client.WithDebug(o.debug))
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "CLI client for the PC parts catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&opts.api, "api", "a", envOr("CATALOG_API", "http://localhost:8080"), "Catalog service base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Dump HTTP requests and responses")

	addResourceCommands(rootCmd, opts)
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// printJSON indents raw API output; empty bodies (204) print nothing.
func printJSON(w io.Writer, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show service health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	}
}
