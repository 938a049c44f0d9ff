package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var breedsCmd = &cobra.Command{
	Use:   "breeds [query]",
	Short: "List breeds, or the closest matches for a query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBreeds,
}

func runBreeds(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	matcher, err := svc.Vocabulary.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load breeds: %w", err)
	}

	names := matcher.Names()
	if len(args) == 1 {
		names = matcher.Query(args[0])
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
	return err
}
