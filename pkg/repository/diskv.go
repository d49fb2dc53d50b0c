package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
)

const (
	categoryEvents    = "events"
	categorySummaries = "summaries"
	categoryDiaries   = "diaries"
)

// Store is a diskv-backed implementation of all three collaborators. It is
// the local stand-in the CLI and TUI run against; records are JSON files
// bucketed by category and date.
type Store struct {
	d *diskv.Diskv
}

var _ Events = (*Store)(nil)
var _ Summaries = (*Store)(nil)
var _ Diaries = (*Store)(nil)

// Open creates a Store rooted at basePath.
func Open(basePath string) (*Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("repository: base path required")
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

// keys look like `category-YYYY-MM-DD-id`; the category and date become
// directories so a date range scan stays cheap.
func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "-")
	if len(parts) < 5 {
		return &diskv.PathKey{FileName: key}
	}
	date := strings.Join(parts[1:4], "-")
	return &diskv.PathKey{
		Path:     []string{parts[0], date},
		FileName: strings.Join(parts[4:], "-"),
	}
}

func pathToKey(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pk.Path, "-"), pk.FileName)
}

func makeKey(category string, date dateutil.Day, id string) string {
	return fmt.Sprintf("%s-%s-%s", category, date, id)
}

// keyDate extracts the date segment from a stored key, or the sentinel.
func keyDate(key string) dateutil.Day {
	pk := keyToPath(key)
	if len(pk.Path) != 2 {
		return dateutil.None
	}
	return dateutil.Normalize(pk.Path[1])
}

func (s *Store) scan(ctx context.Context, category string, start, end dateutil.Day, visit func(key string, data []byte) error) error {
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, category+"-") {
			continue
		}
		date := keyDate(key)
		if !date.Valid() {
			continue
		}
		if start.Valid() && date.Before(start) {
			continue
		}
		if end.Valid() && !date.Before(end) {
			continue
		}
		data, err := s.d.Read(key)
		if err != nil {
			return E(KindServer, "scan "+category, err)
		}
		if err := visit(key, data); err != nil {
			return err
		}
	}
	return nil
}

// FetchEventsForRange returns raw events with start dates in [start, end).
func (s *Store) FetchEventsForRange(ctx context.Context, start, end dateutil.Day) ([]event.RawEvent, error) {
	out := make([]event.RawEvent, 0)
	err := s.scan(ctx, categoryEvents, start, end, func(key string, data []byte) error {
		var raw event.RawEvent
		if err := json.Unmarshal(data, &raw); err != nil {
			return E(KindServer, "decode event", err)
		}
		out = append(out, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchRecurringEvents returns every recurring record in the store. Their
// occurrences can land arbitrarily far from the stored start date, so date
// bounds do not apply.
func (s *Store) FetchRecurringEvents(ctx context.Context) ([]event.RawEvent, error) {
	out := make([]event.RawEvent, 0)
	err := s.scan(ctx, categoryEvents, dateutil.None, dateutil.None, func(key string, data []byte) error {
		var raw event.RawEvent
		if err := json.Unmarshal(data, &raw); err != nil {
			return E(KindServer, "decode event", err)
		}
		if raw.IsRecurring {
			out = append(out, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) FetchEventsForDate(ctx context.Context, date dateutil.Day) ([]event.RawEvent, error) {
	date = dateutil.Normalize(date)
	if !date.Valid() {
		return nil, E(KindServer, "fetch events", errors.New("invalid date"))
	}
	return s.FetchEventsForRange(ctx, date, date.AddDays(1))
}

func (s *Store) CreateEvent(ctx context.Context, payload event.RawEvent) (event.RawEvent, error) {
	day := dateutil.Normalize(payload.EventDay)
	if !day.Valid() {
		return event.RawEvent{}, E(KindServer, "create event", errors.New("invalid event_day"))
	}
	if payload.EventID == "" {
		payload.EventID = uuid.NewString()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return event.RawEvent{}, E(KindServer, "encode event", err)
	}
	if err := s.d.Write(makeKey(categoryEvents, day, payload.EventID), data); err != nil {
		return event.RawEvent{}, E(KindServer, "write event", err)
	}
	return payload, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	found := false
	err := s.scan(ctx, categoryEvents, dateutil.None, dateutil.None, func(key string, data []byte) error {
		var raw event.RawEvent
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		if raw.EventID != id {
			return nil
		}
		found = true
		if err := s.d.Erase(key); err != nil {
			return E(KindServer, "erase event", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return E(KindNotFound, "delete event", fmt.Errorf("event %s", id))
	}
	return nil
}

func (s *Store) FetchSummariesForRange(ctx context.Context, start, end dateutil.Day) ([]summary.Summary, error) {
	out := make([]summary.Summary, 0)
	err := s.scan(ctx, categorySummaries, start, end, func(key string, data []byte) error {
		var sum summary.Summary
		if err := json.Unmarshal(data, &sum); err != nil {
			return E(KindServer, "decode summary", err)
		}
		out = append(out, sum)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) FetchSummariesForDate(ctx context.Context, date dateutil.Day) ([]summary.Summary, error) {
	date = dateutil.Normalize(date)
	if !date.Valid() {
		return nil, E(KindServer, "fetch summaries", errors.New("invalid date"))
	}
	return s.FetchSummariesForRange(ctx, date, date.AddDays(1))
}

func (s *Store) CreateSummary(ctx context.Context, sum summary.Summary) (summary.Summary, error) {
	day := dateutil.Normalize(sum.Date)
	if !day.Valid() {
		return summary.Summary{}, E(KindServer, "create summary", errors.New("invalid date"))
	}
	sum.Date = day
	if sum.ID == "" {
		sum.ID = uuid.NewString()
	}
	if sum.CreatedAt.IsZero() {
		sum.CreatedAt = time.Now()
	}
	data, err := json.Marshal(sum)
	if err != nil {
		return summary.Summary{}, E(KindServer, "encode summary", err)
	}
	if err := s.d.Write(makeKey(categorySummaries, day, sum.ID), data); err != nil {
		return summary.Summary{}, E(KindServer, "write summary", err)
	}
	return sum, nil
}

func (s *Store) DeleteSummariesForDate(ctx context.Context, date dateutil.Day) error {
	date = dateutil.Normalize(date)
	if !date.Valid() {
		return E(KindServer, "delete summaries", errors.New("invalid date"))
	}
	return s.scan(ctx, categorySummaries, date, date.AddDays(1), func(key string, data []byte) error {
		if err := s.d.Erase(key); err != nil {
			return E(KindServer, "erase summary", err)
		}
		return nil
	})
}

func (s *Store) FetchDiariesForRange(ctx context.Context, start, end dateutil.Day) ([]diary.Entry, error) {
	out := make([]diary.Entry, 0)
	err := s.scan(ctx, categoryDiaries, start, end, func(key string, data []byte) error {
		var e diary.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return E(KindServer, "decode diary", err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchDiaryForDate returns the entry of the given kind, or nil when the
// day has none; absence is not a failure.
func (s *Store) FetchDiaryForDate(ctx context.Context, date dateutil.Day, kind diary.Kind) (*diary.Entry, error) {
	date = dateutil.Normalize(date)
	if !date.Valid() {
		return nil, E(KindServer, "fetch diary", errors.New("invalid date"))
	}
	entries, err := s.FetchDiariesForRange(ctx, date, date.AddDays(1))
	if err != nil {
		return nil, err
	}
	return diary.ForDate(entries, date, kind), nil
}

func (s *Store) PutDiary(ctx context.Context, e diary.Entry) (diary.Entry, error) {
	day := dateutil.Normalize(e.Date)
	if !day.Valid() {
		return diary.Entry{}, E(KindServer, "put diary", errors.New("invalid date"))
	}
	e.Date = day
	if e.ID == "" {
		// One entry per day per kind; re-saving overwrites.
		if prev, err := s.FetchDiaryForDate(ctx, day, e.Kind); err == nil && prev != nil {
			e.ID = prev.ID
		} else {
			e.ID = uuid.NewString()
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return diary.Entry{}, E(KindServer, "encode diary", err)
	}
	if err := s.d.Write(makeKey(categoryDiaries, day, e.ID), data); err != nil {
		return diary.Entry{}, E(KindServer, "write diary", err)
	}
	return e, nil
}

func (s *Store) DeleteDiary(ctx context.Context, id string) error {
	found := false
	err := s.scan(ctx, categoryDiaries, dateutil.None, dateutil.None, func(key string, data []byte) error {
		var e diary.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}
		if e.ID != id {
			return nil
		}
		found = true
		if err := s.d.Erase(key); err != nil {
			return E(KindServer, "erase diary", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return E(KindNotFound, "delete diary", fmt.Errorf("diary %s", id))
	}
	return nil
}
