package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/summaries"
)

func addSummaries(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	remove := false

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "Show or delete a day's AI summaries.",
		Example: `
nestcal summaries --on=2025-03-10
nestcal summaries --on=2025-03-10 --delete
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			_, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			if remove {
				r := summaries.Delete{Summaries: s, On: when}
				return oo.HandleError(r.Do(context.Background()))
			}
			r := summaries.List{Summaries: s, On: when}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the day's summaries instead of listing them.")
	options.AddOnArgs(cmd, on)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
