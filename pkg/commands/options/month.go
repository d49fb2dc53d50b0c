package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// MonthOptions
type MonthOptions struct {
	MonthString string
	Long        bool
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.MonthString, "month", "",
		`Specify a month, example: --month="2025-03". Defaults to the current month.`)
	cmd.Flags().BoolVarP(&o.Long, "long", "l", false,
		"One line per day with that day's events.")
}

func (o *MonthOptions) GetMonth() (int, time.Month, error) {
	if o.MonthString == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", o.MonthString)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable month %q, want YYYY-MM", o.MonthString)
	}
	return t.Year(), t.Month(), nil
}
