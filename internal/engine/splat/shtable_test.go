package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHTableSetFetchRoundTrip(t *testing.T) {
	table := NewSHTable(4)
	dc := [3]float32{0.1, 0.2, 0.3}
	rest := [][3]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}

	table.SetSlot(2, dc, rest)
	slot := table.FetchSlot(2)

	assert.Equal(t, dc[0], slot[0])
	assert.Equal(t, dc[1], slot[1])
	assert.Equal(t, dc[2], slot[2])
	assert.Equal(t, float32(1), slot[3])
	assert.Equal(t, float32(9), slot[11])
	// Beyond the 3 supplied triples, the slot is zero-padded.
	assert.Equal(t, float32(0), slot[12])
}

func TestSHTableSlotsDoNotOverlap(t *testing.T) {
	table := NewSHTable(3)
	table.SetSlot(0, [3]float32{1, 1, 1}, nil)
	table.SetSlot(1, [3]float32{2, 2, 2}, nil)

	s0 := table.FetchSlot(0)
	s1 := table.FetchSlot(1)
	assert.Equal(t, float32(1), s0[0])
	assert.Equal(t, float32(2), s1[0])
}

func TestSHTableWidthIsFixed(t *testing.T) {
	table := NewSHTable(1000)
	assert.Equal(t, SHTableWidth, table.Width)
}

func TestTexelCoordWrapsAtWidth(t *testing.T) {
	table := NewSHTable(1)
	x, y := table.TexelCoord(0, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	// Pick a vertex index large enough that its texels cross a row boundary.
	bigTable := NewSHTable(SHTableWidth)
	x, y = bigTable.TexelCoord(SHTableWidth-1, texelsPerVertex-1)
	assert.GreaterOrEqual(t, y, 1)
	assert.Less(t, x, SHTableWidth)
}
