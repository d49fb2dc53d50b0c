package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2025-02-28". Defaults to today.`)
}

func (o *OnOptions) GetOn() (dateutil.Day, error) {
	if o.OnString == "" {
		return dateutil.Today(), nil
	}
	d := dateutil.Normalize(o.OnString)
	if !d.Valid() {
		return dateutil.None, fmt.Errorf("unparseable date %q, want YYYY-MM-DD", o.OnString)
	}
	return d, nil
}
