package importics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nestcal/nestcal/pkg/log"
	"github.com/nestcal/nestcal/pkg/repository"
)

type Import struct {
	Events repository.Events

	Path string
}

// Do ingests an iCalendar file. Records without a DTEND come out of the
// parser flagged for span repair, so the grid never shows them as bare
// single days.
func (n *Import) Do(ctx context.Context) error {
	if n.Events == nil {
		return errors.New("can not import, no event source")
	}
	if n.Path == "" {
		return errors.New("requires a file to import")
	}

	f, err := os.Open(n.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	return n.ingest(ctx, f)
}

func (n *Import) ingest(ctx context.Context, r io.Reader) error {
	raws, err := repository.ParseICS(r)
	if err != nil {
		return err
	}

	imported := 0
	for _, raw := range raws {
		if _, err := n.Events.CreateEvent(ctx, raw); err != nil {
			log.Warn("import: skipping event", "title", raw.Title, "error", err)
			continue
		}
		imported++
	}

	fmt.Printf("imported %d of %d events\n", imported, len(raws))
	return nil
}
