package gb

import "errors"

var (
	// ErrUnsupportedMapper is returned for cartridge types the core
	// knows about but does not implement (MBC2/5/6/7, MMM01, HuC).
	ErrUnsupportedMapper = errors.New("unsupported mapper")

	// ErrOutOfBounds is returned when an access lands in a mapper's
	// no-man's-land. It indicates an emulator bug or a malformed ROM.
	ErrOutOfBounds = errors.New("address out of bounds")

	// ErrInvalidOpcode is returned when the CPU dispatches one of the
	// 11 undefined SM83 opcodes.
	ErrInvalidOpcode = errors.New("invalid cpu instruction")

	// ErrBadValue is returned when a byte does not map to an
	// enumerated kind.
	ErrBadValue = errors.New("bad value")

	// ErrRomSize is returned when the ROM file size disagrees with the
	// header's declared bank count.
	ErrRomSize = errors.New("rom size mismatch")

	// ErrBootRomWrite is returned on a write into the boot ROM window
	// while boot mode is active. That is a programming bug, not a ROM
	// bug.
	ErrBootRomWrite = errors.New("write to boot rom")
)
