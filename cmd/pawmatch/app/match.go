package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pawmatch/internal/catalog"
)

var matchCmd = &cobra.Command{
	Use:     "match",
	Short:   "Ask the catalog to pick one dog from a set of ids",
	Example: `  pawmatch match --id VXGFTIcBOvEgQ5OCx40W --id V3GFTIcBOvEgQ5OCx40W`,
	Args:    cobra.NoArgs,
	RunE:    runMatch,
}

func init() {
	matchCmd.Flags().StringSlice("id", nil, "Dog id to choose from (repeatable, required)")
	matchCmd.Flags().String("format", "table", "Output format: table or json")

	if err := matchCmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("mark id flag required: %v", err))
	}
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ids, err := cmd.Flags().GetStringSlice("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	format, _ := cmd.Flags().GetString("format")

	svc, cleanup, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	dog, err := svc.Match.Match(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), dog)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), dogTable([]catalog.Dog{dog}))
	return err
}
