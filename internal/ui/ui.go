package ui

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dmgo/internal/gb"
)

// Screen is an RGBA framebuffer implementing gb.PixelSink.
type Screen struct {
	pix []byte
}

func NewScreen() *Screen {
	return &Screen{
		pix: make([]byte, gb.ScreenWidth*gb.ScreenHeight*4),
	}
}

func (s *Screen) SetPixel(x, y int, c gb.Color) {
	i := (y*gb.ScreenWidth + x) * 4
	s.pix[i+0] = byte(c.R*255 + 0.5)
	s.pix[i+1] = byte(c.G*255 + 0.5)
	s.pix[i+2] = byte(c.B*255 + 0.5)
	s.pix[i+3] = 0xFF
}

// P - pause
// N - one frame and stop
// Tab - show fps

var keyMap = map[ebiten.Key]gb.Button{
	ebiten.KeyZ:          gb.BtnA,
	ebiten.KeyX:          gb.BtnB,
	ebiten.KeyEnter:      gb.BtnStart,
	ebiten.KeyBackspace:  gb.BtnSelect,
	ebiten.KeyShiftRight: gb.BtnSelect,
	ebiten.KeyArrowRight: gb.BtnRight,
	ebiten.KeyArrowLeft:  gb.BtnLeft,
	ebiten.KeyArrowUp:    gb.BtnUp,
	ebiten.KeyArrowDown:  gb.BtnDown,
}

type UI struct {
	machine *gb.GameBoy
	screen  *Screen
	img     *ebiten.Image
	scale   int
	paused  bool
	debug   bool
}

func New(machine *gb.GameBoy, screen *Screen, scale int) *UI {
	return &UI{
		machine: machine,
		screen:  screen,
		img:     ebiten.NewImage(gb.ScreenWidth, gb.ScreenHeight),
		scale:   scale,
	}
}

func (ui *UI) Update() error {
	for key, btn := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			ui.machine.Joypad().Press(btn)
		}
		if inpututil.IsKeyJustReleased(key) {
			ui.machine.Joypad().Release(btn)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.paused = !ui.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ui.debug = !ui.debug
	}
	step := !ui.paused
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		step = true
		ui.paused = true
	}
	if !step {
		return nil
	}

	if err := ui.machine.StepFrame(); err != nil {
		slog.Error("emulation halted", "err", err)
		for _, pc := range ui.machine.History() {
			slog.Error("history", "pc", fmt.Sprintf("0x%04X", pc))
		}
		return err
	}
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	ui.img.WritePixels(ui.screen.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(ui.scale), float64(ui.scale))
	screen.DrawImage(ui.img, op)

	if ui.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.0f", ebiten.ActualFPS()), 0, 0)
	}
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return gb.ScreenWidth * ui.scale, gb.ScreenHeight * ui.scale
}

func RunUI(ui *UI, title string) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(gb.ScreenWidth*ui.scale, gb.ScreenHeight*ui.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
