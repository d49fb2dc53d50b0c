package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/del"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a calendar event.",
		Example: `
nestcal delete --id=171dff69-f8b9-4dca-9fc7-0a0f41f3e404
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if io.ID == "" {
				return oo.HandleError(errors.New("requires --id"))
			}
			_, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := del.Delete{
				Events: s,
				ID:     io.ID,
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddIDArgs(cmd, io)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
