package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/dmitrijs2005/fittracker/internal/filex"
)

// Sink stores an exported file and returns where it ended up.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes exports into a local directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (f *FileSink) Write(_ context.Context, name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(f.dir)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(p, data, 0o600); err != nil {
		return "", err
	}
	return p, nil
}

const exportAllPrefix = "fittracker"

// ExportService renders collections or the whole document as indented JSON.
type ExportService struct {
	state    *state.AppState
	sink     Sink
	notifier Notifier
	now      func() time.Time
}

func NewExportService(st *state.AppState, sink Sink, n Notifier) *ExportService {
	return &ExportService{state: st, sink: sink, notifier: n, now: time.Now}
}

// ExportFileName is "{prefix}_export_{YYYY-MM-DD}.json".
func ExportFileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.json", prefix, now.Format(time.DateOnly))
}

// ExportCollection writes one collection. Unknown keys are a validation
// error.
func (e *ExportService) ExportCollection(ctx context.Context, key models.CollectionKey) (string, error) {
	doc := e.state.Document()
	var items any
	switch key {
	case models.KeyHabits:
		items = doc.Habits
	case models.KeyMeals:
		items = doc.Meals
	case models.KeyWorkouts:
		items = doc.Workouts
	case models.KeyReminders:
		items = doc.Reminders
	case models.KeyHydrationLog:
		items = doc.HydrationLog
	default:
		return "", common.NewValidationError("Collection", fmt.Sprintf("unknown collection %q", key))
	}
	return e.write(ctx, string(key), items)
}

// ExportAll writes the whole document without the password hash.
func (e *ExportService) ExportAll(ctx context.Context) (string, error) {
	doc := e.state.Document().Clone()
	doc.Profile.PasswordHash = ""
	return e.write(ctx, exportAllPrefix, doc)
}

func (e *ExportService) write(ctx context.Context, prefix string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	loc, err := e.sink.Write(ctx, ExportFileName(prefix, e.now()), data)
	if err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if e.notifier != nil {
		e.notifier.Show("Exported to " + loc)
	}
	return loc, nil
}
