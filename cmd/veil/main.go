// Command veil inspects and exercises the anonymization rule set.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/zoobzio/veil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "veil",
		Short:   "Field anonymization engine",
		Long:    "veil transforms sensitive field values into non-sensitive substitutes\naccording to a declarative YAML rule set.",
		Version: fmt.Sprintf("%s (%s) %s", version, commit, date),
	}

	cmd.AddCommand(providersCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(alterCmd())

	return cmd
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List all available providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := veil.Builtin(veil.NewFaker(veil.FakerOptions{}))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available providers:")
			fmt.Fprintln(out)
			for _, entry := range registry.Entries() {
				fmt.Fprintf(out, "  %-20s %s\n", entry.ID, entry.Description)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "fake.* methods: %s\n", strings.Join(veil.FakeMethods(), ", "))
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <schema.yaml>",
		Short: "Validate an anonymization schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := veil.LoadSchema(args[0])
			if err != nil {
				return err
			}
			if _, err := veil.NewAnonymizer(schema); err != nil {
				return err
			}
			fields := 0
			for _, table := range schema.Tables {
				fields += len(table.Fields)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tables, %d fields, ok\n", args[0], len(schema.Tables), fields)
			return nil
		},
	}
}

func alterCmd() *cobra.Command {
	var rule string
	var rawArgs []string
	var locale string

	cmd := &cobra.Command{
		Use:   "alter --rule <id> [value]",
		Short: "Apply a single rule to a value",
		Example: `  veil alter --rule mask --arg sign=* secret
  veil alter --rule fiscalcode "Jane Doe"
  veil alter --rule fake.email --locale de_DE x`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original := ""
			if len(args) == 1 {
				original = args[0]
			}

			callArgs := veil.Args{}
			for _, raw := range rawArgs {
				k, v, found := strings.Cut(raw, "=")
				if !found || k == "" {
					return fmt.Errorf("malformed --arg %q, want k=v", raw)
				}
				callArgs[k] = v
			}
			if locale != "" {
				callArgs["locale"] = locale
			}

			locales := []string(nil)
			if locale != "" {
				locales = []string{locale}
			}
			registry := veil.Builtin(veil.NewFaker(veil.FakerOptions{Locales: locales}))

			out, err := registry.Alter(cmd.Context(), rule, original, callArgs)
			if err != nil {
				return err
			}
			if out.IsNull() {
				fmt.Fprintln(cmd.OutOrStdout(), "NULL")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&rule, "rule", "", "Rule identifier to apply")
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "Provider argument as k=v (repeatable)")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for fake.* rules")
	_ = cmd.MarkFlagRequired("rule")

	return cmd
}
