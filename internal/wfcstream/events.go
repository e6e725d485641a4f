package wfcstream

import "github.com/overwave-systems/overwave/internal/wfc"

// EventType names the kind of update a Driver broadcasts to observers.
// These mirror the three states the core's step-wise driver can return
// after a collapse+propagate cycle.
type EventType string

const (
	EventProgress EventType = "progress"
	EventDone     EventType = "done"
	EventFailed   EventType = "failed"
)

// CellSnapshot is the observer-facing view of one wave cell: either the
// tile it collapsed to, or how many possibilities remain.
type CellSnapshot struct {
	Collapsed     bool   `json:"collapsed"`
	Tile          string `json:"tile,omitempty"`
	Possibilities int    `json:"possibilities"`
}

// Event is the JSON payload pushed to every connected observer. Cells is
// only populated on progress/failed events; Grid carries the final render
// on a done event, so observers don't need to reconstruct it themselves.
type Event struct {
	Type           EventType      `json:"type"`
	Attempt        int            `json:"attempt"`
	Width          int            `json:"width,omitempty"`
	Height         int            `json:"height,omitempty"`
	Cells          []CellSnapshot `json:"cells,omitempty"`
	Grid           []string       `json:"grid,omitempty"`
	ContradictionX int            `json:"contradiction_x,omitempty"`
	ContradictionY int            `json:"contradiction_y,omitempty"`
}

// snapshotCells renders every cell of wave as a CellSnapshot, projecting
// collapsed cells onto their pattern's center tile the same way Render
// does for a fully collapsed wave.
func snapshotCells(wave *wfc.Wave, cat *wfc.Catalog) []CellSnapshot {
	cells := make([]CellSnapshot, 0, wave.Width*wave.Height)
	for y := 0; y < wave.Height; y++ {
		for x := 0; x < wave.Width; x++ {
			cell := wave.At(x, y)
			snap := CellSnapshot{Possibilities: cell.Count()}
			if idx, ok := cell.Single(); ok {
				snap.Collapsed = true
				snap.Tile = string(rune(cat.Patterns[idx].Center()))
			}
			cells = append(cells, snap)
		}
	}
	return cells
}

// gridRows renders a wfc.Grid as plain strings for JSON transport.
func gridRows(g wfc.Grid) []string {
	rows := make([]string, len(g.Rows))
	for y, row := range g.Rows {
		buf := make([]rune, len(row))
		for x, t := range row {
			buf[x] = rune(t)
		}
		rows[y] = string(buf)
	}
	return rows
}
