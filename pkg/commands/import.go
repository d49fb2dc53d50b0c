package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/importics"
)

func addImport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an iCalendar file.",
		Example: `
nestcal import appointments.ics
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one .ics file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := importics.Import{
				Events: s,
				Path:   args[0],
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
