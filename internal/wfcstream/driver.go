package wfcstream

import (
	"github.com/overwave-systems/overwave/internal/wfc"
)

// Driver runs a wfc.Solver to completion step by step, broadcasting a
// snapshot event to a Hub after every collapse+propagate cycle, enabling
// external visualizers to render intermediate waves. On success it returns
// the same grid Solve would have produced. On failure it returns
// wfc.ErrSolveFailed itself rather than Solve's *wfc.ContradictionError;
// the contradiction site travels in the failed event instead.
type Driver struct {
	solver *wfc.Solver
	cat    *wfc.Catalog
	hub    *Hub
}

// NewDriver builds a Driver over an already-constructed solver, rendering
// against cat and broadcasting through hub.
func NewDriver(solver *wfc.Solver, cat *wfc.Catalog, hub *Hub) *Driver {
	return &Driver{solver: solver, cat: cat, hub: hub}
}

// Run steps the solver until it reports Done or Failed, broadcasting a
// progress event after every intermediate step.
func (d *Driver) Run() (wfc.Grid, error) {
	for {
		result, err := d.solver.Step()
		if err != nil {
			return wfc.Grid{}, err
		}

		switch result {
		case wfc.Progress:
			d.hub.Broadcast(d.progressEvent())
		case wfc.Done:
			grid, err := wfc.Render(d.solver.Wave(), d.cat)
			if err != nil {
				return wfc.Grid{}, err
			}
			d.hub.Broadcast(d.doneEvent(grid))
			return grid, nil
		case wfc.Failed:
			d.hub.Broadcast(d.failedEvent())
			return wfc.Grid{}, wfc.ErrSolveFailed
		}
	}
}

func (d *Driver) progressEvent() Event {
	wave := d.solver.Wave()
	return Event{
		Type:    EventProgress,
		Attempt: d.solver.Attempts(),
		Width:   wave.Width,
		Height:  wave.Height,
		Cells:   snapshotCells(wave, d.cat),
	}
}

func (d *Driver) doneEvent(grid wfc.Grid) Event {
	wave := d.solver.Wave()
	return Event{
		Type:    EventDone,
		Attempt: d.solver.Attempts(),
		Width:   wave.Width,
		Height:  wave.Height,
		Grid:    gridRows(grid),
	}
}

func (d *Driver) failedEvent() Event {
	wave := d.solver.Wave()
	evt := Event{
		Type:    EventFailed,
		Attempt: d.solver.Attempts(),
		Width:   wave.Width,
		Height:  wave.Height,
		Cells:   snapshotCells(wave, d.cat),
	}
	if last := d.solver.LastError(); last != nil {
		evt.ContradictionX, evt.ContradictionY = last.X, last.Y
	}
	return evt
}
