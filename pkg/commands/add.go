package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/commands/options"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	eo := &options.EventOptions{}
	oo := &options.OutputOptions{}

	var title string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calendar event.",
		Example: `
nestcal add "Glucose screening" --on=2025-03-10 --time=09:30 --type=checkup
nestcal add "Hospital tour" --on=2025-03-20 --end=2025-03-21
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, s, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			r := add.Add{
				Events:      s,
				Span:        spanOptions(cfg),
				Title:       title,
				On:          when,
				Time:        eo.Time,
				End:         dateutil.Normalize(eo.End),
				Type:        eo.Type,
				Recurrence:  eo.Recurrence,
				Description: eo.Description,
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddEventArgs(cmd, eo)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
