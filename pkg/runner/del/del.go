package del

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/monthload"
	"github.com/nestcal/nestcal/pkg/repository"
)

type Delete struct {
	Events repository.Events
	Bus    *bus.Bus

	ID string
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Events == nil {
		return errors.New("can not delete, no event source")
	}
	if n.ID == "" {
		return errors.New("requires an event id")
	}

	coord := monthload.New(monthload.Config{
		Surface: monthload.NopSurface{},
		Sources: monthload.Sources{Events: n.Events},
		Bus:     n.Bus,
	})
	if err := coord.DeleteEvent(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", n.ID)
	return nil
}
