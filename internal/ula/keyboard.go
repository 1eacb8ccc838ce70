package ula

// Row is a keyboard matrix row index, 0-7.
type Row = uint8

// Row select high bytes of port 0xFE, per spec.md §6. A bit clear in
// the high byte selects the corresponding row for this read.
const (
	RowCapsShiftToV Row = 0 // 0xFE: Caps Shift, Z, X, C, V
	RowAToG         Row = 1 // 0xFD: A-G
	RowQToT         Row = 2 // 0xFB: Q-T
	Row1To5         Row = 3 // 0xF7: 1-5
	Row0To6         Row = 4 // 0xEF: 0-6
	RowPToY         Row = 5 // 0xDF: P-Y
	RowEnterToH     Row = 6 // 0xBF: Enter, L-H
	RowSpaceToB     Row = 7 // 0x7F: Space, Sym Shift, M, N, B
)

// key identifies a single key by (row, column).
type key struct {
	Row, Col uint8
}

// keymap names every key on the 40-key matrix by row and column,
// column 0 being bit 0 of the row byte.
var keymap = map[string]key{
	"CapsShift": {RowCapsShiftToV, 0}, "Z": {RowCapsShiftToV, 1}, "X": {RowCapsShiftToV, 2}, "C": {RowCapsShiftToV, 3}, "V": {RowCapsShiftToV, 4},
	"A": {RowAToG, 0}, "S": {RowAToG, 1}, "D": {RowAToG, 2}, "F": {RowAToG, 3}, "G": {RowAToG, 4},
	"Q": {RowQToT, 0}, "W": {RowQToT, 1}, "E": {RowQToT, 2}, "R": {RowQToT, 3}, "T": {RowQToT, 4},
	"1": {Row1To5, 0}, "2": {Row1To5, 1}, "3": {Row1To5, 2}, "4": {Row1To5, 3}, "5": {Row1To5, 4},
	"0": {Row0To6, 0}, "9": {Row0To6, 1}, "8": {Row0To6, 2}, "7": {Row0To6, 3}, "6": {Row0To6, 4},
	"P": {RowPToY, 0}, "O": {RowPToY, 1}, "I": {RowPToY, 2}, "U": {RowPToY, 3}, "Y": {RowPToY, 4},
	"Enter": {RowEnterToH, 0}, "L": {RowEnterToH, 1}, "K": {RowEnterToH, 2}, "J": {RowEnterToH, 3}, "H": {RowEnterToH, 4},
	"Space": {RowSpaceToB, 0}, "SymShift": {RowSpaceToB, 1}, "M": {RowSpaceToB, 2}, "N": {RowSpaceToB, 3}, "B": {RowSpaceToB, 4},
}

// PressKey presses a key by name, e.g. "Enter" or "A".
func (u *ULA) PressKey(name string) {
	if k, ok := keymap[name]; ok {
		u.KeyDown(k.Row, k.Col)
	}
}

// ReleaseKey releases a key by name.
func (u *ULA) ReleaseKey(name string) {
	if k, ok := keymap[name]; ok {
		u.KeyUp(k.Row, k.Col)
	}
}
