package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/dmitrijs2005/fittracker/internal/logging"
	"github.com/google/uuid"
)

// SyncReport counts transferred entities per collection.
type SyncReport map[models.CollectionKey]int

func (r SyncReport) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// SyncService copies entities between the document and the remote API.
// Entities are linked by remoteId; linked entities are never transferred
// again.
type SyncService interface {
	Pull(ctx context.Context) (SyncReport, error)
	Push(ctx context.Context) (SyncReport, error)
	Newsletter(ctx context.Context, email string) error
}

// UserSource supplies the remote user id that owns pushed records.
// AuthService implements it.
type UserSource interface {
	UserID() string
}

type syncService struct {
	client   client.Client
	users    UserSource
	state    *state.AppState
	notifier Notifier
	logger   logging.Logger
	newID    func() string
	now      func() time.Time
	bindings []binder
}

func NewSyncService(c client.Client, users UserSource, st *state.AppState, n Notifier, logger logging.Logger) SyncService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &syncService{
		client:   c,
		users:    users,
		state:    st,
		notifier: n,
		logger:   logger.With("component", "sync"),
		newID:    uuid.NewString,
		now:      time.Now,
		bindings: defaultBindings(),
	}
}

// Pull imports remote entities that no local entity is linked to. The
// document is saved once, after every collection was fetched.
func (s *syncService) Pull(ctx context.Context) (SyncReport, error) {
	report := SyncReport{}
	doc := s.state.Document()
	for _, b := range s.bindings {
		records, err := s.client.List(ctx, b.resource())
		if err != nil {
			return report, s.finish(ctx, report, fmt.Errorf("pull %s: %w", b.key(), err))
		}
		n, err := b.pull(doc, records, s.base)
		if err != nil {
			return report, s.finish(ctx, report, fmt.Errorf("pull %s: %w", b.key(), err))
		}
		if n > 0 {
			report[b.key()] = n
		}
	}
	if err := s.finish(ctx, report, nil); err != nil {
		return report, err
	}
	s.show(fmt.Sprintf("Pulled %d item(s)", report.Total()))
	return report, nil
}

// Push submits unlinked local entities on behalf of the logged-in user and
// records the returned ids. A failure stops the push; entities linked before
// it stay linked.
func (s *syncService) Push(ctx context.Context) (SyncReport, error) {
	report := SyncReport{}
	owner := ""
	if s.users != nil {
		owner = s.users.UserID()
	}
	if owner == "" {
		return report, fmt.Errorf("push: %w: log in first", common.ErrorUnauthorized)
	}

	doc := s.state.Document()
	for _, b := range s.bindings {
		n, err := b.push(ctx, s.client, doc, userRef(owner))
		if n > 0 {
			report[b.key()] = n
		}
		if err != nil {
			return report, s.finish(ctx, report, fmt.Errorf("push %s: %w", b.key(), err))
		}
	}
	if err := s.finish(ctx, report, nil); err != nil {
		return report, err
	}
	s.show(fmt.Sprintf("Pushed %d item(s)", report.Total()))
	return report, nil
}

func (s *syncService) Newsletter(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return common.NewValidationError("Email", "is not a valid address")
	}
	if err := s.client.Subscribe(ctx, email); err != nil {
		return err
	}
	s.show("Subscribed " + email)
	return nil
}

// finish saves whatever was transferred and joins cause with a save error.
func (s *syncService) finish(ctx context.Context, report SyncReport, cause error) error {
	if report.Total() > 0 {
		if err := s.state.Save(ctx); err != nil {
			if cause != nil {
				return fmt.Errorf("%w (save: %v)", cause, err)
			}
			return err
		}
	}
	if cause != nil {
		s.logger.Warn(ctx, "sync incomplete", "err", cause, "transferred", report.Total())
	}
	return cause
}

func (s *syncService) base() models.Base {
	return models.Base{ID: s.newID(), CreatedAt: models.NewTimestamp(s.now())}
}

func (s *syncService) show(msg string) {
	if s.notifier != nil {
		s.notifier.Show(msg)
	}
}

type binder interface {
	key() models.CollectionKey
	resource() client.Resource
	pull(doc *models.Document, records []json.RawMessage, base func() models.Base) (int, error)
	push(ctx context.Context, c client.Client, doc *models.Document, owner any) (int, error)
}

// binding maps one collection to one remote resource.
type binding[T models.Entity] struct {
	kind   kinds.Kind[T]
	res    client.Resource
	ref    func(T) string
	encode func(T) map[string]any
	decode func(record) models.Fields
}

func (b binding[T]) key() models.CollectionKey { return b.kind.Key() }
func (b binding[T]) resource() client.Resource { return b.res }

func (b binding[T]) pull(doc *models.Document, records []json.RawMessage, base func() models.Base) (int, error) {
	slot := b.kind.Slot(doc)
	linked := make(map[string]struct{}, len(*slot))
	for _, it := range *slot {
		if r := b.ref(it); r != "" {
			linked[r] = struct{}{}
		}
	}

	var imported []T
	for _, raw := range records {
		rec, err := decodeRecord(raw)
		if err != nil {
			return 0, err
		}
		id := rec.str("id")
		if id == "" {
			continue
		}
		if _, ok := linked[id]; ok {
			continue
		}
		payload := b.decode(rec)
		payload["remoteId"] = id
		item, err := b.kind.New(base(), payload)
		if err != nil {
			return 0, err
		}
		linked[id] = struct{}{}
		imported = append(imported, item)
	}
	if len(imported) > 0 {
		// rows come oldest first; the newest must end up at index 0
		slices.Reverse(imported)
		*slot = append(imported, *slot...)
	}
	return len(imported), nil
}

func (b binding[T]) push(ctx context.Context, c client.Client, doc *models.Document, owner any) (int, error) {
	slot := b.kind.Slot(doc)
	n := 0
	for i, it := range *slot {
		if b.ref(it) != "" {
			continue
		}
		body := b.encode(it)
		body["usuario_id"] = owner
		id, err := c.Create(ctx, b.res, body)
		if err != nil {
			return n, err
		}
		if id == "" {
			continue
		}
		linked, err := models.Merge(it, models.Fields{"remoteId": id})
		if err != nil {
			return n, err
		}
		(*slot)[i] = linked
		n++
	}
	return n, nil
}

func defaultBindings() []binder {
	return []binder{
		binding[models.Habit]{
			kind: kinds.Habits{},
			res:  client.ResourceHabits,
			ref:  func(h models.Habit) string { return h.RemoteID },
			encode: func(h models.Habit) map[string]any {
				return map[string]any{"titulo": h.Name, "horario": clockTime(h.Time)}
			},
			decode: func(r record) models.Fields {
				return models.Fields{"name": r.str("titulo"), "time": r.timeOfDay("horario")}
			},
		},
		binding[models.Meal]{
			kind: kinds.Meals{},
			res:  client.ResourceMeals,
			ref:  func(m models.Meal) string { return m.RemoteID },
			encode: func(m models.Meal) map[string]any {
				return map[string]any{
					"titulo":    m.Name,
					"calorias":  m.Calories,
					"data_hora": dateTime(m.CreatedAt, m.Time),
				}
			},
			decode: func(r record) models.Fields {
				return models.Fields{
					"name":     r.str("titulo"),
					"calories": r.num("calorias"),
					"time":     r.timeOfDay("data_hora"),
				}
			},
		},
		binding[models.Workout]{
			kind: kinds.Workouts{},
			res:  client.ResourceWorkouts,
			ref:  func(w models.Workout) string { return w.RemoteID },
			encode: func(w models.Workout) map[string]any {
				return map[string]any{
					"tipo":        w.Name,
					"duracao_min": w.Duration,
					"data_hora":   dateTime(w.CreatedAt, ""),
					"observacao":  w.Group,
				}
			},
			decode: func(r record) models.Fields {
				return models.Fields{
					"name":     r.str("tipo"),
					"duration": r.num("duracao_min"),
					"group":    r.str("observacao"),
				}
			},
		},
		binding[models.HydrationEntry]{
			kind: kinds.Hydration{},
			res:  client.ResourceHydration,
			ref:  func(e models.HydrationEntry) string { return e.RemoteID },
			encode: func(e models.HydrationEntry) map[string]any {
				return map[string]any{
					"data":          e.CreatedAt.Time.Format(time.DateOnly),
					"quantidade_ml": e.Amount,
				}
			},
			decode: func(r record) models.Fields {
				return models.Fields{"amount": r.num("quantidade_ml")}
			},
		},
		binding[models.Reminder]{
			kind: kinds.Reminders{},
			res:  client.ResourceReminders,
			ref:  func(r models.Reminder) string { return r.RemoteID },
			encode: func(r models.Reminder) map[string]any {
				return map[string]any{"tipo": reminderTipo(r.Kind), "mensagem": r.Message, "horario": clockTime(r.Time)}
			},
			decode: func(r record) models.Fields {
				return models.Fields{"kind": string(reminderKind(r.str("tipo"))), "message": r.str("mensagem"), "time": r.timeOfDay("horario")}
			},
		},
	}
}

// reminderTipos maps reminder kinds to the backend's tipo enum.
var reminderTipos = map[models.ReminderKind]string{
	models.ReminderMeal:      "refeicao",
	models.ReminderHydration: "hidratacao",
	models.ReminderWorkout:   "treino",
	models.ReminderHabit:     "habito",
	models.ReminderCustom:    "personalizado",
}

func reminderTipo(k models.ReminderKind) string {
	if t, ok := reminderTipos[k]; ok {
		return t
	}
	return reminderTipos[models.ReminderCustom]
}

// reminderKind accepts the backend enum and, for rows written by older
// clients, the kind names themselves. Anything else is custom.
func reminderKind(tipo string) models.ReminderKind {
	tipo = strings.ToLower(strings.TrimSpace(tipo))
	for k, t := range reminderTipos {
		if t == tipo {
			return k
		}
	}
	if k, ok := models.ParseReminderKind(tipo); ok {
		return k
	}
	return models.ReminderCustom
}

// userRef sends numeric user ids as JSON numbers, the type of the
// usuario_id column.
func userRef(id string) any {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}
	return id
}

// record is one remote row decoded with json.Number for numeric columns.
type record map[string]any

func decodeRecord(raw json.RawMessage) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var r record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	}
	return ""
}

func (r record) num(key string) int {
	n, err := strconv.ParseFloat(r.str(key), 64)
	if err != nil {
		return 0
	}
	return int(n)
}

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d`)

// timeOfDay extracts HH:MM from a TIME column or an RFC 3339 timestamp.
func (r record) timeOfDay(key string) string {
	s := r.str(key)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	if m := hhmm.FindString(s); m != "" {
		return m
	}
	return ""
}

func clockTime(hm string) any {
	if hm == "" {
		return nil
	}
	return hm + ":00"
}

func dateTime(created models.Timestamp, hm string) string {
	d := created.Time.Format(time.DateOnly)
	if hm == "" {
		hm = created.Time.Format("15:04")
	}
	return d + " " + hm + ":00"
}
