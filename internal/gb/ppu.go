package gb

// Screen geometry and line timing.
const (
	ScreenWidth  = 160
	ScreenHeight = 144

	linesPerFrame = 154
	dotsPerLine   = 456
	// DotsPerFrame is the length of one full frame in dots.
	DotsPerFrame = linesPerFrame * dotsPerLine

	oamScanDots = 80                            // mode 2
	drawDots    = ScreenWidth                   // mode 3, one pixel per dot
	hblankStart = oamScanDots + drawDots        // first mode-0 dot of a line
)

// PPU register addresses.
const (
	addrLCDC = 0xFF40
	addrSTAT = 0xFF41
	addrSCY  = 0xFF42
	addrSCX  = 0xFF43
	addrLY   = 0xFF44
	addrLYC  = 0xFF45
	addrDMA  = 0xFF46
	addrBGP  = 0xFF47
	addrOBP0 = 0xFF48
	addrOBP1 = 0xFF49
	addrWY   = 0xFF4A
	addrWX   = 0xFF4B
)

// LCDC bits.
const (
	lcdcBGEnable     = uint8(1 << 0)
	lcdcObjEnable    = uint8(1 << 1)
	lcdcObjSize      = uint8(1 << 2)
	lcdcBGMapSelect  = uint8(1 << 3)
	lcdcDataSelect   = uint8(1 << 4)
	lcdcWinEnable    = uint8(1 << 5)
	lcdcWinMapSelect = uint8(1 << 6)
	lcdcLCDEnable    = uint8(1 << 7)
)

// STAT bits above the mode field.
const (
	statLYCMatch  = uint8(1 << 2)
	statMode0Int  = uint8(1 << 3)
	statMode1Int  = uint8(1 << 4)
	statMode2Int  = uint8(1 << 5)
	statLYCInt    = uint8(1 << 6)
	statWriteMask = uint8(0xF8) // low 3 bits are read-only
)

// PPU modes as held in STAT bits 0-1.
const (
	modeHBlank = uint8(0)
	modeVBlank = uint8(1)
	modeOAM    = uint8(2)
	modeDraw   = uint8(3)
)

// PPU drives the mode state machine and renders the background layer one
// pixel per dot. Object and window layers are not rendered, but their
// control registers round-trip so games keep working against them.
type PPU struct {
	ic   *IC
	sink PixelSink

	vram [0x2000]uint8

	lcdc uint8
	stat uint8
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	dma  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	dot     int // dot within the current line, 0..455
	palette Palette
}

func NewPPU(ic *IC, sink PixelSink, palette Palette) *PPU {
	p := &PPU{
		ic:      ic,
		sink:    sink,
		palette: palette,
	}
	p.setMode(modeOAM)
	return p
}

// Step advances the PPU by n dots.
func (p *PPU) Step(n int) {
	for i := 0; i < n; i++ {
		p.tic()
	}
}

func (p *PPU) tic() {
	if p.ly < ScreenHeight {
		switch {
		case p.dot == 0:
			p.setMode(modeOAM)
			if p.stat&statMode2Int != 0 {
				p.ic.Raise(IntStat)
			}
		case p.dot == oamScanDots:
			p.setMode(modeDraw)
		case p.dot == hblankStart:
			p.setMode(modeHBlank)
			if p.stat&statMode0Int != 0 {
				p.ic.Raise(IntStat)
			}
		}
		if p.dot >= oamScanDots && p.dot < hblankStart {
			p.drawPixel(p.dot-oamScanDots, int(p.ly))
		}
	}

	p.dot++
	if p.dot < dotsPerLine {
		return
	}
	p.dot = 0
	p.ly++
	switch {
	case p.ly == ScreenHeight:
		p.setMode(modeVBlank)
		p.ic.Raise(IntVBlank)
		if p.stat&statMode1Int != 0 {
			p.ic.Raise(IntStat)
		}
	case p.ly == linesPerFrame:
		p.ly = 0
	}
	p.compareLine()
}

// compareLine refreshes the LY==LYC bit and fires the STAT interrupt
// when the match interrupt is enabled.
func (p *PPU) compareLine() {
	if p.ly == p.lyc {
		p.stat |= statLYCMatch
		if p.stat&statLYCInt != 0 {
			p.ic.Raise(IntStat)
		}
		return
	}
	p.stat &^= statLYCMatch
}

func (p *PPU) setMode(mode uint8) {
	p.stat = p.stat&^0x03 | mode
}

// Mode returns the current STAT mode bits.
func (p *PPU) Mode() uint8 {
	return p.stat & 0x03
}

// drawPixel renders the background pixel at screen position (x, y) and
// hands it to the sink.
func (p *PPU) drawPixel(x, y int) {
	sx := (x + int(p.scx)) & 0xFF
	sy := (y + int(p.scy)) & 0xFF

	mapBase := 0x9800
	if p.lcdc&lcdcBGMapSelect != 0 {
		mapBase = 0x9C00
	}
	tileID := p.vram[mapBase-0x8000+(sy/8)*32+sx/8]

	var dataAddr int
	if p.lcdc&lcdcDataSelect != 0 {
		dataAddr = 0x8000 + int(tileID)*16
	} else {
		dataAddr = 0x9000 + int(int8(tileID))*16
	}

	// Each tile row is two bytes: low plane then high plane.
	row := sy % 8
	lo := p.vram[dataAddr-0x8000+row*2]
	hi := p.vram[dataAddr-0x8000+row*2+1]
	bit := uint(7 - sx%8)
	colorIndex := (lo>>bit)&1 | ((hi>>bit)&1)<<1

	if p.lcdc&lcdcBGEnable == 0 {
		colorIndex = 0
	}
	slot := (p.bgp >> (colorIndex * 2)) & 0x03
	p.sink.SetPixel(x, y, p.palette[slot])
}

func (p *PPU) ReadVRAM(offset uint16) uint8 {
	return p.vram[offset]
}

func (p *PPU) WriteVRAM(offset uint16, data uint8) {
	p.vram[offset] = data
}

func (p *PPU) ReadIO(addr uint16) uint8 {
	switch addr {
	case addrLCDC:
		return p.lcdc
	case addrSTAT:
		return p.stat
	case addrSCY:
		return p.scy
	case addrSCX:
		return p.scx
	case addrLY:
		return p.ly
	case addrLYC:
		return p.lyc
	case addrDMA:
		return p.dma
	case addrBGP:
		return p.bgp
	case addrOBP0:
		return p.obp0
	case addrOBP1:
		return p.obp1
	case addrWY:
		return p.wy
	case addrWX:
		return p.wx
	}
	logger.Warn("ppu: read of unhandled register", "addr", addr)
	return 0
}

func (p *PPU) WriteIO(addr uint16, data uint8) {
	switch addr {
	case addrLCDC:
		p.lcdc = data
	case addrSTAT:
		p.stat = p.stat&^statWriteMask | data&statWriteMask
	case addrSCY:
		p.scy = data
	case addrSCX:
		p.scx = data
	case addrLY:
		// read-only
	case addrLYC:
		p.lyc = data
		p.compareLine()
	case addrDMA:
		p.dma = data
	case addrBGP:
		p.bgp = data
	case addrOBP0:
		p.obp0 = data
	case addrOBP1:
		p.obp1 = data
	case addrWY:
		p.wy = data
	case addrWX:
		p.wx = data
	default:
		logger.Warn("ppu: write to unhandled register", "addr", addr)
	}
}
