package hal

import "image"

// Native panel geometry in memory order.
const (
	PanelWidth  = 320
	PanelHeight = 480
)

const (
	simCASET  = 0x2A
	simPASET  = 0x2B
	simRAMWR  = 0x2C
	simMADCTL = 0x36

	simMY = 0x80
	simMX = 0x40
	simMV = 0x20
)

// Transaction is one command and everything written after it.
type Transaction struct {
	Cmd     byte
	Params  []byte
	Pixels  int
	Strobes int
}

// PanelSim is a Bus that decodes the controller protocol into a pixel memory.
//
// It understands the column/page address window, memory write with an
// auto-advancing cursor, and the row/column exchange and mirror bits of the
// memory access control register. Everything else is accepted and traced.
type PanelSim struct {
	mem []uint16

	selected bool
	inReset  bool

	port   byte
	cmd    byte
	params []byte
	hi     byte
	half   bool

	madctl         byte
	x1, y1, x2, y2 int
	cx, cy         int

	trace []Transaction
	tron  bool

	// Writes and Strobes count every WR pulse by kind.
	Writes  int
	Strobes int
}

// NewPanelSim returns a deselected panel with a full-size window.
func NewPanelSim() *PanelSim {
	p := &PanelSim{mem: make([]uint16, PanelWidth*PanelHeight)}
	p.resetRegisters()
	return p
}

func (p *PanelSim) resetRegisters() {
	p.madctl = 0
	p.x1, p.y1 = 0, 0
	p.x2, p.y2 = PanelWidth-1, PanelHeight-1
	p.cx, p.cy = 0, 0
	p.cmd = 0
	p.params = p.params[:0]
	p.half = false
}

// EnableTrace starts recording transactions and drops any earlier ones.
func (p *PanelSim) EnableTrace() {
	p.tron = true
	p.trace = nil
}

// Trace returns the recorded transactions.
func (p *PanelSim) Trace() []Transaction { return p.trace }

// ResetCounters zeroes Writes and Strobes.
func (p *PanelSim) ResetCounters() {
	p.Writes = 0
	p.Strobes = 0
}

func (p *PanelSim) Select(active bool) { p.selected = active }

func (p *PanelSim) Reset(active bool) {
	if active && !p.inReset {
		p.resetRegisters()
	}
	p.inReset = active
}

func (p *PanelSim) Command(c byte) {
	p.port = c
	if !p.selected || p.inReset {
		return
	}
	p.cmd = c
	p.params = p.params[:0]
	p.half = false
	if c == simRAMWR {
		p.cx, p.cy = p.x1, p.y1
	}
	if p.tron {
		p.trace = append(p.trace, Transaction{Cmd: c})
	}
}

func (p *PanelSim) Write(b byte) {
	p.port = b
	if !p.selected || p.inReset {
		return
	}
	p.Writes++
	p.data(b, false)
}

func (p *PanelSim) Strobe() {
	if !p.selected || p.inReset {
		return
	}
	p.Strobes++
	p.data(p.port, true)
}

func (p *PanelSim) data(b byte, strobe bool) {
	var tr *Transaction
	if p.tron && len(p.trace) > 0 {
		tr = &p.trace[len(p.trace)-1]
		if strobe {
			tr.Strobes++
		}
	}
	if p.cmd == simRAMWR {
		if !p.half {
			p.hi = b
			p.half = true
			return
		}
		p.half = false
		p.put(uint16(p.hi)<<8 | uint16(b))
		if tr != nil {
			tr.Pixels++
		}
		return
	}
	p.params = append(p.params, b)
	if tr != nil {
		tr.Params = append(tr.Params, b)
	}
	switch {
	case p.cmd == simCASET && len(p.params) == 4:
		p.x1 = int(p.params[0])<<8 | int(p.params[1])
		p.x2 = int(p.params[2])<<8 | int(p.params[3])
	case p.cmd == simPASET && len(p.params) == 4:
		p.y1 = int(p.params[0])<<8 | int(p.params[1])
		p.y2 = int(p.params[2])<<8 | int(p.params[3])
	case p.cmd == simMADCTL && len(p.params) == 1:
		p.madctl = p.params[0]
	}
}

func (p *PanelSim) put(c uint16) {
	if i, ok := p.index(p.cx, p.cy); ok {
		p.mem[i] = c
	}
	p.cx++
	if p.cx > p.x2 {
		p.cx = p.x1
		p.cy++
		if p.cy > p.y2 {
			p.cy = p.y1
		}
	}
}

// Size returns the addressable width and height for the current access mode.
func (p *PanelSim) Size() (w, h int) {
	if p.madctl&simMV != 0 {
		return PanelHeight, PanelWidth
	}
	return PanelWidth, PanelHeight
}

// MADCTL returns the last memory access control value.
func (p *PanelSim) MADCTL() byte { return p.madctl }

// Window returns the current inclusive address window.
func (p *PanelSim) Window() image.Rectangle {
	return image.Rect(p.x1, p.y1, p.x2+1, p.y2+1)
}

func (p *PanelSim) index(x, y int) (int, bool) {
	w, h := p.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	if p.madctl&simMV != 0 {
		x, y = y, x
	}
	if p.madctl&simMX != 0 {
		x = PanelWidth - 1 - x
	}
	if p.madctl&simMY != 0 {
		y = PanelHeight - 1 - y
	}
	return y*PanelWidth + x, true
}

// Pixel returns the color at (x, y) in the current orientation, or 0 when
// (x, y) is outside the panel.
func (p *PanelSim) Pixel(x, y int) uint16 {
	if i, ok := p.index(x, y); ok {
		return p.mem[i]
	}
	return 0
}

// Memory returns the raw panel memory in native order. It is not a copy.
func (p *PanelSim) Memory() []uint16 { return p.mem }

// Logical renders the current orientation into dst, resizing it if needed.
func (p *PanelSim) Logical(dst *image.RGBA) *image.RGBA {
	w, h := p.Size()
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			c := RGBAFrom565(p.Pixel(x, y))
			j := x * 4
			row[j+0] = c.R
			row[j+1] = c.G
			row[j+2] = c.B
			row[j+3] = 0xFF
		}
	}
	return dst
}
