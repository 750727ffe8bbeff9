package clipmap

import "strings"

// Morph flags the tile edges whose vertices blend toward the coarser ring
// outside them. Only the empty set, the four edges and the four corner sums
// are legal; opposite edges never combine.
type Morph uint8

const (
	MorphTop Morph = 1 << iota
	MorphRight
	MorphBottom
	MorphLeft
)

// MorphNone marks a tile that never blends (the center block).
const MorphNone Morph = 0

// Corner combinations used by the shell corners.
const (
	MorphTopRight    = MorphTop | MorphRight
	MorphRightBottom = MorphRight | MorphBottom
	MorphBottomLeft  = MorphBottom | MorphLeft
	MorphLeftTop     = MorphLeft | MorphTop
)

// Vector returns the morph direction as a 2D vector with components in {-1, 0, 1}.
// Corner values are the component-wise sum of their two edges.
func (m Morph) Vector() (x, y int) {
	if m&MorphRight != 0 {
		x++
	}
	if m&MorphLeft != 0 {
		x--
	}
	if m&MorphTop != 0 {
		y++
	}
	if m&MorphBottom != 0 {
		y--
	}
	return x, y
}

// Valid reports whether m is one of the nine legal directions.
func (m Morph) Valid() bool {
	if m&^(MorphTop|MorphRight|MorphBottom|MorphLeft) != 0 {
		return false
	}
	if m&MorphTop != 0 && m&MorphBottom != 0 {
		return false
	}
	if m&MorphLeft != 0 && m&MorphRight != 0 {
		return false
	}
	return true
}

func (m Morph) String() string {
	if m == MorphNone {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		flag Morph
		name string
	}{
		{MorphTop, "top"},
		{MorphRight, "right"},
		{MorphBottom, "bottom"},
		{MorphLeft, "left"},
	} {
		if m&e.flag != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "+")
}

// MorphWeight returns the blend weight of a vertex at tile-space position
// (tx, ty), both in [-1, 1]. The weight is 0 on the side opposite the flagged
// edges and ramps linearly to 1 at them.
func MorphWeight(tx, ty float64, m Morph) float64 {
	dx, dy := m.Vector()
	xm := max(tx*float64(dx), 0)
	ym := max(ty*float64(dy), 0)
	return max(xm, ym)
}
