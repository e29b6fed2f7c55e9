package services

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/fittracker/internal/client/kinds"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/state"
	"github.com/dmitrijs2005/fittracker/internal/common"
)

// QuickServing is the amount logged by the one-tap button.
const QuickServing = 250

// HydrationService tracks water intake. The running total is the sum of the
// log and may exceed the goal; only Percent is capped.
type HydrationService struct {
	state    *state.AppState
	log      *Collection[models.HydrationEntry]
	notifier Notifier
}

func NewHydrationService(st *state.AppState, n Notifier, opts ...CollectionOption) *HydrationService {
	return &HydrationService{
		state:    st,
		log:      NewCollection[models.HydrationEntry](st, kinds.Hydration{}, n, opts...),
		notifier: n,
	}
}

// Log exposes the underlying entry collection.
func (h *HydrationService) Log() *Collection[models.HydrationEntry] { return h.log }

func (h *HydrationService) Add(ctx context.Context, amount int) (models.HydrationEntry, error) {
	if amount <= 0 {
		return models.HydrationEntry{}, common.NewValidationError("Amount", "must be positive")
	}
	return h.log.Add(ctx, models.Fields{"amount": amount})
}

func (h *HydrationService) QuickAdd(ctx context.Context) (models.HydrationEntry, error) {
	return h.Add(ctx, QuickServing)
}

func (h *HydrationService) Remove(ctx context.Context, id string) error {
	return h.log.Remove(ctx, id)
}

// UndoLast removes the most recent entry. It reports false when the log is
// empty.
func (h *HydrationService) UndoLast(ctx context.Context) (bool, error) {
	items := h.log.Items()
	if len(items) == 0 {
		h.show("Nothing to undo")
		return false, nil
	}
	return true, h.log.Remove(ctx, items[0].ID)
}

// SetGoal changes the daily goal; values below models.MinWaterGoal are
// rejected without touching the document.
func (h *HydrationService) SetGoal(ctx context.Context, ml int) error {
	if ml < models.MinWaterGoal {
		err := common.NewValidationError("", fmt.Sprintf("Minimum goal is %d ml", models.MinWaterGoal))
		h.show(err.Error())
		return err
	}
	h.state.Document().WaterGoal = ml
	if err := h.state.Save(ctx); err != nil {
		return err
	}
	h.show(fmt.Sprintf("Goal set to %d ml", ml))
	return nil
}

func (h *HydrationService) Total() int { return h.state.Document().HydrationTotal() }

func (h *HydrationService) Goal() int { return h.state.Document().WaterGoal }

// Percent is the total over the goal, rounded and clamped to 0..100.
func (h *HydrationService) Percent() int {
	return HydrationPercent(h.Total(), h.Goal())
}

func HydrationPercent(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := int(math.Round(float64(total) / float64(goal) * 100))
	return max(0, min(p, 100))
}

func (h *HydrationService) show(msg string) {
	if h.notifier != nil {
		h.notifier.Show(msg)
	}
}
