package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcparts/catalog/internal/client"
	"github.com/pcparts/catalog/internal/model"
)

func parseKind(arg string) (model.Kind, error) {
	if k, ok := model.KindFromPath(arg); ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown resource %q (one of: %s)", arg, strings.Join(resourceNames(), ", "))
}

func resourceNames() []string {
	var names []string
	for _, k := range model.NamedDictionaries() {
		names = append(names, k.Path())
	}
	names = append(names, model.KindFanSize.Path())
	for _, k := range model.Components() {
		names = append(names, k.Path())
	}
	sort.Strings(names)
	return names
}

// readBody takes the payload from --data, or from --file ("-" is stdin).
func readBody(cmd *cobra.Command, data, file string) ([]byte, error) {
	var raw []byte
	switch {
	case data != "" && file != "":
		return nil, fmt.Errorf("--data and --file are mutually exclusive")
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("--data or --file required")
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	return raw, nil
}

func addResourceCommands(root *cobra.Command, opts *rootOptions) {
	listCmd := &cobra.Command{
		Use:   "list RESOURCE",
		Short: "List every row of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			raw, err := opts.client().List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	root.AddCommand(listCmd)

	var q client.PageQuery
	pageCmd := &cobra.Command{
		Use:   "page RESOURCE",
		Short: "Fetch one sorted page of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			raw, err := opts.client().Page(cmd.Context(), kind, q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	pageCmd.Flags().IntVar(&q.Offset, "offset", 0, "Rows to skip")
	pageCmd.Flags().IntVar(&q.Limit, "limit", 0, "Page size (server default when 0)")
	pageCmd.Flags().StringVar(&q.Sort, "sort", "", "Sort as field[,asc|desc]")
	root.AddCommand(pageCmd)

	getCmd := &cobra.Command{
		Use:   "get RESOURCE ID",
		Short: "Get one row by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			raw, err := opts.client().Get(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	root.AddCommand(getCmd)

	root.AddCommand(newWriteCmd(opts, "create RESOURCE", "Create a row from a JSON payload", 1,
		func(cmd *cobra.Command, c *client.Client, kind model.Kind, _ string, body []byte) (json.RawMessage, error) {
			return c.Create(cmd.Context(), kind, body)
		}))
	root.AddCommand(newWriteCmd(opts, "replace RESOURCE ID", "Replace a row (PUT); omitted optional fields are cleared", 2,
		func(cmd *cobra.Command, c *client.Client, kind model.Kind, id string, body []byte) (json.RawMessage, error) {
			return c.Replace(cmd.Context(), kind, id, body)
		}))
	root.AddCommand(newWriteCmd(opts, "patch RESOURCE ID", "Update the supplied fields of a row (PATCH)", 2,
		func(cmd *cobra.Command, c *client.Client, kind model.Kind, id string, body []byte) (json.RawMessage, error) {
			return c.Patch(cmd.Context(), kind, id, body)
		}))

	deleteCmd := &cobra.Command{
		Use:   "delete RESOURCE ID",
		Short: "Delete a row; deleting a missing row succeeds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().Delete(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", kind.Path(), args[1])
			return err
		},
	}
	root.AddCommand(deleteCmd)
}

type writeFunc func(cmd *cobra.Command, c *client.Client, kind model.Kind, id string, body []byte) (json.RawMessage, error)

func newWriteCmd(opts *rootOptions, use, short string, nargs int, write writeFunc) *cobra.Command {
	var data, file string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			body, err := readBody(cmd, data, file)
			if err != nil {
				return err
			}
			var id string
			if nargs > 1 {
				id = args[1]
			}
			raw, err := write(cmd, opts.client(), kind, id, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the JSON payload from a file (- for stdin)")
	return cmd
}
