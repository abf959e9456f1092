package client

import (
	"fmt"

	"github.com/noctura/backend/domain"
)

// DragController drives one card drag from start to drop. Local state is
// mutated immediately for visual feedback; the server call runs after the
// drop, and both the success and the failure path end in a full re-fetch,
// so the last completed re-fetch always wins even when responses arrive
// out of order.
type DragController struct {
	state  *BoardState
	api    BoardAPI
	notify func(error)

	dragID string
	origin domain.Status
	active bool
}

// NewDragController wires the board state to its API. notify receives
// user-visible failures and may be nil.
func NewDragController(state *BoardState, api BoardAPI, notify func(error)) *DragController {
	if notify == nil {
		notify = func(error) {}
	}
	return &DragController{
		state:  state,
		api:    api,
		notify: notify,
	}
}

// Begin captures the dragged card and its originating column.
func (d *DragController) Begin(id string) bool {
	origin, ok := d.state.StatusOf(id)
	if !ok {
		return false
	}
	d.dragID = id
	d.origin = origin
	d.active = true
	return true
}

// Hover speculatively moves the card into the hovered column, local memory
// only. Safe to call repeatedly for the same column.
func (d *DragController) Hover(column domain.Status) {
	if !d.active {
		return
	}
	d.state.SpeculativeMove(d.dragID, column)
}

// End completes the drag. A drop outside any column or back onto the
// origin makes no network call and settles the card back where it started.
// Otherwise the optimistic move is confirmed with the server and local
// state is replaced by a fresh fetch on success and on failure alike.
func (d *DragController) End(target domain.Status, valid bool) {
	if !d.active {
		return
	}
	id, origin := d.dragID, d.origin
	d.active = false

	if !valid || target == origin {
		d.state.SpeculativeMove(id, origin)
		return
	}

	d.state.SpeculativeMove(id, target)

	if err := d.api.Move(id, target); err != nil {
		d.notify(fmt.Errorf("move failed: %w", err))
	}
	d.refetch()
}

// DeleteCard removes the card locally first, then confirms with the
// server. A failed delete restores the card via the rollback re-fetch.
func (d *DragController) DeleteCard(id string) {
	d.state.Remove(id)

	if err := d.api.Delete(id); err != nil {
		d.notify(fmt.Errorf("delete failed: %w", err))
		d.refetch()
	}
}

// refetch replaces local state with the canonical server answer. A failed
// fetch is surfaced but leaves the current local state in place; the next
// successful fetch converges it.
func (d *DragController) refetch() {
	snapshot, err := d.api.List()
	if err != nil {
		d.notify(fmt.Errorf("refresh failed: %w", err))
		return
	}
	d.state.Reconcile(snapshot)
}
