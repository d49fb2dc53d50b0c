package commands

import (
	"github.com/spf13/cobra"

	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/repository"
	"github.com/nestcal/nestcal/pkg/store"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nestcal",
		Short: "A pregnancy calendar on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addMonth(topLevel)
	addDay(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addSummaries(topLevel)
	addImport(topLevel)
	addVersion(topLevel)
}

// openStore resolves configuration and opens the local data store.
func openStore() (store.Config, *repository.Store, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := repository.Open(cfg.BasePath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func spanOptions(cfg store.Config) event.SpanOptions {
	return event.SpanOptions{RepairPadding: cfg.RepairPadding()}
}
