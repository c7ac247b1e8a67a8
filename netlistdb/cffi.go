package netlistdb

import (
	"strconv"
	"strings"

	"github.com/sarchlab/netlistdb/clilog"
	"github.com/sarchlab/netlistdb/hiername"
)

// ExternalArrays is the column-oriented input accepted by
// BuildFromExternalArrays: parallel slices describing an already-flattened
// netlist, typically produced by a foreign tool and handed across a
// language boundary.
//
// PinNames is encoded as "hier:pinname" or "hier:pinname[idx]"; a pin name
// with no colon is a top port. Hierarchy parsing is not performed: any '/'
// inside the hier segment is kept verbatim rather than split into path
// components, so depth-sensitive queries (e.g. hiername.Name.Depth) will
// silently miscount names that embed a literal slash.
type ExternalArrays struct {
	CellNames []string
	CellTypes []string

	// PinNames[i] is the encoded name of pin i; see the type doc comment
	// for the "hier:pinname[idx]" grammar.
	PinNames []string

	NetNames []string

	// PinDirect[i] is 0 for I, 1 for O, anything else for Unknown.
	PinDirect []int

	Pin2Cell []int
	Pin2Net  []int

	// ZeroNets and OneNets list net ids permanently tied to constant 0/1.
	ZeroNets []int
	OneNets  []int
}

// parsePinName decodes one "hier:pinname" or "hier:pinname[idx]" entry. An
// entry with no colon is a top port (empty hier).
func parsePinName(s string) PinName {
	hier := ""
	rest := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hier = s[:i]
		rest = s[i+1:]
	}

	name := rest
	var idx *int
	if i := strings.IndexByte(rest, '['); i >= 0 && strings.HasSuffix(rest, "]") {
		if v, err := strconv.Atoi(rest[i+1 : len(rest)-1]); err == nil {
			name = rest[:i]
			idx = &v
		}
	}

	var h hiername.Name
	if hier != "" {
		h = hiername.Single(hier)
	}
	return PinName{Hier: h, Name: name, Idx: idx}
}

// BuildFromExternalArrays builds a Database directly from externally-owned
// arrays, skipping parsing and flattening entirely. It runs only the CSR
// build (4.5 step 4) and the direction-dependent passes (driver
// canonicalization, per-cell output count); the caller is responsible for
// supplying PinDirect already resolved, since there is no source text or
// pin-info provider to consult here.
func BuildFromExternalArrays(a ExternalArrays, logger *clilog.Logger) (*Database, error) {
	if logger == nil {
		logger = clilog.Default()
	}
	numCells := len(a.CellNames)
	numPins := len(a.PinNames)
	numNets := len(a.NetNames)

	cellNames := make([]hiername.Name, numCells)
	cellNameToID := make(map[string]int, numCells)
	for i, n := range a.CellNames {
		h := hiername.Single(n)
		cellNames[i] = h
		cellNameToID[h.Key()] = i
	}

	pinNames := make([]PinName, numPins)
	pinNameToID := make(map[string]int, numPins)
	for i, raw := range a.PinNames {
		pn := parsePinName(raw)
		pinNames[i] = pn
		pinNameToID[pinKey(pn.Hier, pn.Name, pn.Idx)] = i
	}

	netNames := make([]PinName, numNets)
	netNameToID := make(map[string]int, numNets)
	for i, n := range a.NetNames {
		pn := PinName{Name: n}
		netNames[i] = pn
		netNameToID[pinKey(pn.Hier, pn.Name, pn.Idx)] = i
	}

	pinDirect := make([]Direction, numPins)
	for i, d := range a.PinDirect {
		switch d {
		case 0:
			pinDirect[i] = I
		case 1:
			pinDirect[i] = O
		default:
			pinDirect[i] = Unknown
		}
	}

	constantNets := make(map[int]bool, len(a.ZeroNets)+len(a.OneNets))
	for _, n := range a.ZeroNets {
		constantNets[n] = false
	}
	for _, n := range a.OneNets {
		constantNets[n] = true
	}

	db := &Database{
		NumCells:        numCells,
		NumLogicPins:    numPins,
		NumPins:         numPins,
		NumNets:         numNets,
		CellNameToID:    cellNameToID,
		CellTypes:       append([]string(nil), a.CellTypes...),
		CellNames:       cellNames,
		PinNameToID:     pinNameToID,
		PinNames:        pinNames,
		NetNameToID:     netNameToID,
		NetNames:        netNames,
		PortNameToPinID: make(map[string]int),
		Pin2Cell:        append([]int(nil), a.Pin2Cell...),
		Pin2Net:         append([]int(nil), a.Pin2Net...),
		Cell2Pin:        buildCSR(numCells, a.Pin2Cell),
		Net2Pin:         buildCSR(numNets, a.Pin2Net),
		PinDirect:       pinDirect,
		ConstantNets:    constantNets,
	}

	for pinID, pn := range pinNames {
		if pn.Hier.IsEmpty() {
			key := portKey(pn.Name, pn.Idx)
			db.PortNameToPinID[key] = pinID
		}
	}

	if err := postAssignDirection(db, logger); err != nil {
		return nil, err
	}
	return db, nil
}
