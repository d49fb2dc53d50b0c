package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar.",
		Example: `
nestcal ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := ui.UI{
				Events:    s,
				Summaries: s,
				Diaries:   s,
				Span:      spanOptions(cfg),
				DueDate:   cfg.DueDate(),
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
