package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/month"
)

func addMonth(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the month calendar.",
		Example: `
nestcal month
nestcal month --month=2025-03 --long
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, mon, err := mo.GetMonth()
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := month.Month{
				Events:    s,
				Summaries: s,
				Diaries:   s,
				Span:      spanOptions(cfg),
				Year:      year,
				Month:     mon,
				Long:      mo.Long,
				ShowID:    oo.ShowID,
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddMonthArgs(cmd, mo)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
