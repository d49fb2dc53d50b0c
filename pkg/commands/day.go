package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/day"
)

func addDay(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's events, summaries and diary.",
		Example: `
nestcal day
nestcal day --on=2025-03-10
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := day.Day{
				Events:    s,
				Summaries: s,
				Diaries:   s,
				Span:      spanOptions(cfg),
				On:        when,
				ShowID:    oo.ShowID,
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
