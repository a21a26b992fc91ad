package gb

const (
	wramSizeBytes = 0x2000
	hramSizeBytes = 0x7F
	oamSizeBytes  = 0xA0
)

// RAM is a flat byte slab addressed by a zero-based offset. The bus is
// responsible for translating absolute addresses before indexing.
type RAM struct {
	mem []uint8
}

func NewRAM(size int) *RAM {
	return &RAM{mem: make([]uint8, size)}
}

func (r *RAM) Read8(offset uint16) uint8 {
	return r.mem[offset]
}

func (r *RAM) Write8(offset uint16, data uint8) {
	r.mem[offset] = data
}

func (r *RAM) Size() int {
	return len(r.mem)
}
