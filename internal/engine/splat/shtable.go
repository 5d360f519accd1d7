package splat

// SHTable is the side buffer described in §3/§9 "SH-by-texture": 48 packed
// scalars per *original* vertex (not per corner), laid out as RGBA32F
// texels in a fixed-width table so the vertex shader can fetch
// SH[vertexId] with two integer texelFetch coordinates instead of a
// per-vertex-attribute slot. 48/4 = 12 texels per vertex.
type SHTable struct {
	Width, Height int
	// Data is Width*Height*4 float32 scalars, row-major, RGBA-interleaved.
	Data []float32
}

const texelsPerVertex = SHSlotSize / 4

// NewSHTable allocates a table sized for vertexCount original vertices.
func NewSHTable(vertexCount int) *SHTable {
	width := SHTableWidth
	texels := vertexCount * texelsPerVertex
	height := (texels + width - 1) / width
	if height < 1 {
		height = 1
	}
	return &SHTable{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height*4),
	}
}

// TexelCoord returns the (x,y) integer texel coordinate for the k-th texel
// (0..texelsPerVertex-1) of vertex slot i, matching the layout a GLSL
// texelFetch(shTable, ivec2(x,y), 0) call would use.
func (t *SHTable) TexelCoord(vertexIndex, k int) (x, y int) {
	texelIndex := vertexIndex*texelsPerVertex + k
	return texelIndex % t.Width, texelIndex / t.Width
}

// SetSlot packs dc (3 scalars) and up to 15 rest triples (45 scalars) into
// vertex slot i's 48-scalar region, zero-padded beyond RestCoeffCount(degree).
func (t *SHTable) SetSlot(vertexIndex int, dc [3]float32, rest [][3]float32) {
	var scalars [SHSlotSize]float32
	scalars[0], scalars[1], scalars[2] = dc[0], dc[1], dc[2]
	for i, triple := range rest {
		base := 3 + i*3
		if base+3 > SHSlotSize {
			break
		}
		scalars[base], scalars[base+1], scalars[base+2] = triple[0], triple[1], triple[2]
	}

	for k := 0; k < texelsPerVertex; k++ {
		x, y := t.TexelCoord(vertexIndex, k)
		texelOffset := (y*t.Width + x) * 4
		copy(t.Data[texelOffset:texelOffset+4], scalars[k*4:k*4+4])
	}
}

// FetchSlot reverses SetSlot, returning the 48 scalars stored for vertexIndex.
func (t *SHTable) FetchSlot(vertexIndex int) [SHSlotSize]float32 {
	var scalars [SHSlotSize]float32
	for k := 0; k < texelsPerVertex; k++ {
		x, y := t.TexelCoord(vertexIndex, k)
		texelOffset := (y*t.Width + x) * 4
		copy(scalars[k*4:k*4+4], t.Data[texelOffset:texelOffset+4])
	}
	return scalars
}
