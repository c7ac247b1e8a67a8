package netlistdb

import (
	"strconv"

	"github.com/sarchlab/netlistdb/hiername"
)

// Direction is the signal direction of a pin, from the perspective of the
// net it sits on.
type Direction uint8

const (
	// I is an input pin: it listens to its net.
	I Direction = iota
	// O is an output pin: it drives its net. At most one pin per net may
	// be O once direction assignment completes; a net with none is either
	// one of the constant-tied nets or counted as undriven.
	O
	// Unknown means direction assignment could not determine a direction,
	// typically because no LeafPinProvider entry exists for the pin.
	Unknown
)

func (d Direction) String() string {
	switch d {
	case I:
		return "I"
	case O:
		return "O"
	default:
		return "Unknown"
	}
}

// LogicPinType classifies a logic pin at allocation time.
type LogicPinType uint8

const (
	// TopPort is a bit of a top-module header port.
	TopPort LogicPinType = iota
	// Net is a bit of an ordinary internal wire/IO definition.
	Net
	// LeafCellPin is a bit of a leaf (non-module) cell instance pin.
	LeafCellPin
	// Others is the default for a logic pin before anything proves it's
	// one of the three kinds above (a connection target, not yet a
	// def/port/cell-pin allocation site).
	Others
)

// IsPin reports whether this logic pin type survives into the finished
// pin table (TopPort and LeafCellPin do; plain internal Net bits and the
// Others placeholder do not).
func (t LogicPinType) IsPin() bool {
	return t == TopPort || t == LeafCellPin
}

// IsNet reports whether this logic pin type participates in net naming
// (TopPort and Net do; LeafCellPin and Others do not).
func (t LogicPinType) IsNet() bool {
	return t == TopPort || t == Net
}

// PinName is a pin's hierarchical identity: which cell instance it
// belongs to, its name within that cell (a macro pin name for a leaf
// cell pin, or a wire/port name for anything else), and its bit index
// (nil for a scalar signal).
type PinName struct {
	Hier hiername.Name
	Name string
	Idx  *int
}

// Database is a complete flattened netlist: every cell, pin and net
// assigned a dense integer id, with indices for name-based lookup in both
// directions and the pin/net/cell adjacency built as CSR tables.
type Database struct {
	Name string

	NumCells     int
	NumLogicPins int
	NumPins      int
	NumNets      int

	// CellNameToID indexes leaf cell instances plus the synthetic top
	// cell (id 0, empty name); other non-leaf (hierarchical) cells are
	// never given a cell id.
	CellNameToID map[string]int
	CellTypes    []string
	CellNames    []hiername.Name

	// PinNameToID indexes every surviving pin (TopPort or LeafCellPin) by
	// its (hier, name, idx) identity; the key is built with pinKey.
	PinNameToID map[string]int
	PinNames    []PinName

	// NetNameToID and NetNames index nets by their canonical chosen name.
	NetNameToID map[string]int
	NetNames    []PinName

	// PortNameToPinID maps a top-module header port (by name and bit
	// index) straight to its pin id.
	PortNameToPinID map[string]int

	Pin2Cell []int
	Pin2Net  []int
	Cell2Pin CSR
	Net2Pin  CSR

	PinDirect     []Direction
	Cell2NOutputs []int

	// ConstantNets maps a net id to the constant value (false=0, true=1)
	// it is permanently tied to.
	ConstantNets map[int]bool
}

// pinKey builds the canonical map key for a (hier, name, idx) identity.
func pinKey(hier hiername.Name, name string, idx *int) string {
	k := hier.Key() + "\x00" + name
	if idx != nil {
		k += "\x00#" + strconv.Itoa(*idx)
	}
	return k
}

// ChangeCellType retargets a leaf cell instance at a new macro name,
// e.g. after a technology-mapping pass swaps one standard cell for
// another with an identical pinout. It does not revalidate pin
// directions or widths against the new macro.
func (db *Database) ChangeCellType(cellID int, newMacro string) {
	db.CellTypes[cellID] = newMacro
}
