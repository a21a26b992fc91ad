package gb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TimerOverflowReload(t *testing.T) {
	ic := NewIC()
	timer := NewTimer(ic)

	timer.WriteIO(addrTAC, 0x05) // enabled, divider 16
	timer.WriteIO(addrTMA, 0x42)
	timer.WriteIO(addrTIMA, 0xFF)

	timer.Step(16)

	assert.Equal(t, uint8(0x42), timer.ReadIO(addrTIMA), "reloaded from TMA")
	assert.Equal(t, uint8(0x04), ic.ReadIF()&0x04, "timer interrupt requested")
}

func Test_TimerDisabled(t *testing.T) {
	ic := NewIC()
	timer := NewTimer(ic)

	timer.WriteIO(addrTAC, 0x01) // divider set but enable bit clear
	timer.Step(4096)

	assert.Equal(t, uint8(0x00), timer.ReadIO(addrTIMA))
	assert.Equal(t, uint8(0x00), ic.ReadIF())
}

func Test_TimerDividers(t *testing.T) {
	tests := []struct {
		name    string
		tac     uint8
		divider int
	}{
		{name: "1024", tac: 0x04, divider: 1024},
		{name: "16", tac: 0x05, divider: 16},
		{name: "64", tac: 0x06, divider: 64},
		{name: "256", tac: 0x07, divider: 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewTimer(NewIC())
			timer.WriteIO(addrTAC, tt.tac)

			timer.Step(tt.divider - 1)
			assert.Equal(t, uint8(0), timer.ReadIO(addrTIMA))

			timer.Step(1)
			assert.Equal(t, uint8(1), timer.ReadIO(addrTIMA))

			timer.Step(tt.divider * 3)
			assert.Equal(t, uint8(4), timer.ReadIO(addrTIMA))
		})
	}
}

func Test_TimerDIV(t *testing.T) {
	timer := NewTimer(NewIC())

	timer.Step(256)
	assert.Equal(t, uint8(1), timer.ReadIO(addrDIV))

	timer.Step(256 * 4)
	assert.Equal(t, uint8(5), timer.ReadIO(addrDIV))

	// Any write resets DIV regardless of the value.
	timer.WriteIO(addrDIV, 0xAB)
	assert.Equal(t, uint8(0), timer.ReadIO(addrDIV))
}

func Test_TimerTACReadsBack(t *testing.T) {
	timer := NewTimer(NewIC())

	timer.WriteIO(addrTAC, 0x06)
	assert.Equal(t, uint8(0x06), timer.ReadIO(addrTAC))
}
