package options

import "github.com/spf13/cobra"

// EventOptions
type EventOptions struct {
	Time        string
	End         string
	Type        string
	Recurrence  string
	Description string
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.Time, "time", "",
		"Start time, example: --time=14:30. Blank means all-day.")
	cmd.Flags().StringVar(&o.End, "end", "",
		"Last day of a multi-day event (inclusive), example: --end=2025-03-12.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "other",
		"Event type: checkup, ultrasound, class, milestone or other.")
	cmd.Flags().StringVar(&o.Recurrence, "repeat", "",
		"Recurrence: daily, weekly, monthly or yearly.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Free-form event description.")
}
