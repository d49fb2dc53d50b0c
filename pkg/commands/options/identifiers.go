package options

import "github.com/spf13/cobra"

// IDOptions
type IDOptions struct {
	ID string
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Record ID, as shown by --show-ids.")
}
