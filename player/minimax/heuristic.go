package minimax

import "github.com/quatrain/quatrain/game"

// The evaluator scores a non-terminal board for one player by summing
// positional and pattern terms over every occupied cell. It knows
// nothing about search depth or alpha-beta state; it is a pure
// function of board contents and perspective.

// axisValue maps a coordinate along an axis of the given extent
// through a trapezoid: flat and maximal (runLength+1) inside the
// centered winning zone of width runLength, decaying linearly toward
// the edges outside it. Central cells participate in more potential
// runs.
func axisValue(i, extent, runLength int) float64 {
	zoneStart := (extent - runLength) / 2
	zoneEnd := zoneStart + runLength - 1
	peak := float64(runLength + 1)
	switch {
	case i < zoneStart:
		return peak - float64(zoneStart-i)
	case i > zoneEnd:
		return peak - float64(i-zoneEnd)
	default:
		return peak
	}
}

// compatible reports whether q could extend a run anchored at p, i.e.
// shares its color or its shape.
func compatible(p, q game.Piece) bool {
	return q.Color == p.Color || q.Shape == p.Shape
}

// formationBonus rewards partially built, still extensible runs: it
// scans the forward window of runLength-1 cells along the row and
// accumulates a distance-weighted bonus for each piece compatible with
// the anchor, stopping at the first piece that matches neither
// attribute. Cells too close to the edge for a run to fit score
// nothing.
func formationBonus(b *game.Board, row, col int, anchor game.Piece) float64 {
	window := b.RunLength() - 1
	if col+window >= b.Cols() {
		return 0
	}
	var bonus float64
	for d := 1; d <= window; d++ {
		q, occupied := b.CellAt(row, col+d)
		if !occupied {
			continue
		}
		if !compatible(anchor, q) {
			break
		}
		bonus += float64(window - d + 1)
	}
	return bonus
}

// Evaluate scores b from pov's perspective. Color alignment and shape
// alignment contribute independently per cell: a cell can add through
// its color and separately add or subtract through its shape. A piece
// of pov's own color carrying the unfavored shape additionally pays a
// mismatch penalty (it helps color runs while diluting shape runs);
// the penalty is deliberately one-sided and has no mirror for the
// opponent's mismatches.
func Evaluate(b *game.Board, pov game.Color) float64 {
	favored := game.FavoredShape(pov)
	var score float64
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			p, occupied := b.CellAt(row, col)
			if !occupied {
				continue
			}
			rowTerm := axisValue(row, b.Rows(), b.RunLength())
			colTerm := axisValue(col, b.Cols(), b.RunLength())
			positional := rowTerm + colTerm
			pattern := formationBonus(b, row, col, p)

			if p.Color == pov {
				score += positional + pattern
			} else {
				score -= positional + pattern
			}
			if p.Shape == favored {
				score += positional
			} else {
				score -= positional
			}
			if p.Color == pov && p.Shape != favored {
				score -= (rowTerm + colTerm) / 2
			}
		}
	}
	return score
}
