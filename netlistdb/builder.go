package netlistdb

import (
	"sort"
	"sync"

	"github.com/rs/xid"

	"github.com/sarchlab/netlistdb/clilog"
	"github.com/sarchlab/netlistdb/hiername"
	"github.com/sarchlab/netlistdb/svrange"
	"github.com/sarchlab/netlistdb/sverilog"
)

// Diagnostic tags, grouped the way the original's clilog call sites name
// them, so a reader grepping logs for e.g. NL_SV_NETIO finds every
// multi-driver/undriven-net diagnostic in one place.
const (
	TagParse     clilog.Tag = "NL_SV_PARSE"
	TagRef       clilog.Tag = "NL_SV_REF"
	TagLiteral   clilog.Tag = "NL_SV_LIT"
	TagIncompat  clilog.Tag = "NL_SV_INCOMP"
	TagRecur     clilog.Tag = "NL_SV_RECUR"
	TagMorePin   clilog.Tag = "NL_SV_MOREPIN"
	TagNetIO     clilog.Tag = "NL_SV_NETIO"
	TagUndriven  clilog.Tag = "NL_SV_NETIO_UNDRIV"
	TagInout     clilog.Tag = "NL_SV_INOUT"
	TagDirUnk    clilog.Tag = "NL_SV_DIRUNK"
	TagTopModule clilog.Tag = "NL_SV_TOPMODULE_NF"
	TagGuessTop  clilog.Tag = "NL_SV_GUESSTOP"
	TagCantGuess clilog.Tag = "NL_SV_CANTGUESSTOP"
)

// LeafPinProvider is the external pin-info provider the builder consults
// for leaf cell pin directions and (when a connection is wider than one
// bit) declared pin ranges.
type LeafPinProvider interface {
	DirectionOf(macro, pin string, idx *int) Direction
	WidthOf(macro, pin string) (svrange.Range, bool)
	ShouldWarnMissingDirections() bool
}

// DirectionProvider is an alias for LeafPinProvider, kept for readers
// coming from the external-interfaces "pin-info provider" naming.
type DirectionProvider = LeafPinProvider

type pinRef struct {
	Macro, Pin string
	Idx        int
	HasIdx     bool
}

func refOf(macro, pin string, idx *int) pinRef {
	if idx == nil {
		return pinRef{Macro: macro, Pin: pin}
	}
	return pinRef{Macro: macro, Pin: pin, Idx: *idx, HasIdx: true}
}

type macroPin struct{ Macro, Pin string }

// MapLeafPinProvider is a precomputed per-(macro,pin,idx) direction table,
// e.g. loaded once from a standard-cell library description.
type MapLeafPinProvider struct {
	Directions map[pinRef]Direction
	Widths     map[macroPin]svrange.Range
}

// NewMapLeafPinProvider builds an empty MapLeafPinProvider ready for Set
// and SetWidth calls.
func NewMapLeafPinProvider() *MapLeafPinProvider {
	return &MapLeafPinProvider{
		Directions: make(map[pinRef]Direction),
		Widths:     make(map[macroPin]svrange.Range),
	}
}

// Set records the direction of one (macro, pin, idx) pin.
func (m *MapLeafPinProvider) Set(macro, pin string, idx *int, dir Direction) {
	m.Directions[refOf(macro, pin, idx)] = dir
}

// SetWidth records the declared range of a macro's (possibly vector) pin.
func (m *MapLeafPinProvider) SetWidth(macro, pin string, r svrange.Range) {
	m.Widths[macroPin{macro, pin}] = r
}

func (m *MapLeafPinProvider) DirectionOf(macro, pin string, idx *int) Direction {
	if d, ok := m.Directions[refOf(macro, pin, idx)]; ok {
		return d
	}
	return Unknown
}

func (m *MapLeafPinProvider) WidthOf(macro, pin string) (svrange.Range, bool) {
	r, ok := m.Widths[macroPin{macro, pin}]
	return r, ok
}

func (m *MapLeafPinProvider) ShouldWarnMissingDirections() bool { return true }

// FuncLeafPinProvider adapts a plain function into a LeafPinProvider that
// carries no width information.
type FuncLeafPinProvider func(macro, pin string, idx *int) Direction

func (f FuncLeafPinProvider) DirectionOf(macro, pin string, idx *int) Direction {
	return f(macro, pin, idx)
}
func (f FuncLeafPinProvider) WidthOf(macro, pin string) (svrange.Range, bool) {
	return svrange.Range{}, false
}
func (f FuncLeafPinProvider) ShouldWarnMissingDirections() bool { return true }

// NoDirectionProvider is the default LeafPinProvider: every direction is
// Unknown and no widths are known. Unlike MapLeafPinProvider, it reports
// ShouldWarnMissingDirections as false, since using it at all is an
// explicit opt-out of direction assignment rather than an omission.
type NoDirectionProvider struct{}

func (NoDirectionProvider) DirectionOf(macro, pin string, idx *int) Direction {
	return Unknown
}
func (NoDirectionProvider) WidthOf(macro, pin string) (svrange.Range, bool) {
	return svrange.Range{}, false
}
func (NoDirectionProvider) ShouldWarnMissingDirections() bool { return false }

// ConstantXZPolicy governs how a constant bit other than plain 0/1,
// assigned to a net via an assign or a cell-pin connection, is handled.
type ConstantXZPolicy interface {
	AssignX(logger *clilog.Logger, ds *disjointSet, pin int)
	AssignZ(logger *clilog.Logger, ds *disjointSet, pin int)
}

// defaultXZPolicy is the only policy this toolkit ships, matching the
// source behavior exactly: an X literal is downgraded to a plain 0 with a
// warning, so the net still resolves to a definite value; a Z literal is
// silently skipped, since a high-impedance bit connects to nothing.
type defaultXZPolicy struct{}

func (defaultXZPolicy) AssignX(logger *clilog.Logger, ds *disjointSet, pin int) {
	logger.Warn(TagLiteral, "X literal unsupported, treating pin %d as 0", pin)
	ds.setValue(pin, false)
}

func (defaultXZPolicy) AssignZ(logger *clilog.Logger, ds *disjointSet, pin int) {}

// DefaultConstantXZPolicy is used unless Builder.WithConstantXZPolicy
// overrides it.
var DefaultConstantXZPolicy ConstantXZPolicy = defaultXZPolicy{}

// Builder assembles a Database from parsed structural Verilog.
type Builder struct {
	topName  string
	hasTop   bool
	lib      LeafPinProvider
	logger   *clilog.Logger
	xzPolicy ConstantXZPolicy
}

// NewBuilder returns a Builder with the default NoDirectionProvider,
// default constant X/Z policy, and the package-level default logger.
func NewBuilder() *Builder {
	return &Builder{
		lib:      NoDirectionProvider{},
		xzPolicy: DefaultConstantXZPolicy,
	}
}

// WithTop names the top module explicitly; without it, Build guesses the
// top module when the source has more than one.
func (b *Builder) WithTop(name string) *Builder {
	b.topName = name
	b.hasTop = true
	return b
}

// WithLeafPinProvider installs the external pin-info provider consulted
// for leaf cell pin directions and wide-connection pin ranges.
func (b *Builder) WithLeafPinProvider(lib LeafPinProvider) *Builder {
	b.lib = lib
	return b
}

// WithConstantXZPolicy overrides how X/Z literal bits are resolved during
// construction.
func (b *Builder) WithConstantXZPolicy(p ConstantXZPolicy) *Builder {
	b.xzPolicy = p
	return b
}

// WithSink installs a clilog.Sink, wrapped in a fresh clilog.Logger
// dedicated to this build (so its suppression counters don't mix with any
// other Builder's).
func (b *Builder) WithSink(sink clilog.Sink) *Builder {
	b.logger = clilog.NewLogger(sink)
	return b
}

// Build parses nothing itself (source is already a parsed *sverilog.
// SVerilog) and flattens it into a Database, or fails after logging the
// diagnostic that explains it. The error is one of the sentinel errors in
// errors.go, except for a module with conflicting declarations, which
// returns NewModuleMap's own (non-sentinel) error.
func (b *Builder) Build(source *sverilog.SVerilog) (*Database, error) {
	logger := b.logger
	if logger == nil {
		logger = clilog.Default()
	}
	logger = logger.WithSession(xid.New())
	lib := b.lib
	if lib == nil {
		lib = NoDirectionProvider{}
	}
	xzPolicy := b.xzPolicy
	if xzPolicy == nil {
		xzPolicy = DefaultConstantXZPolicy
	}

	modules := make(map[string]*moduleEntry, len(source.Modules))
	for _, md := range source.Modules {
		mm, err := NewModuleMap(md.Module)
		if err != nil {
			logger.Error(TagParse, "module %q: %v", md.Name, err)
			return nil, err
		}
		modules[md.Name] = &moduleEntry{Module: md.Module, MM: mm}
	}

	topName, err := findTopModule(modules, b.topName, b.hasTop, source, logger)
	if err != nil {
		return nil, err
	}

	return initGraphFromModules(modules, topName, lib, logger, xzPolicy)
}

type moduleEntry struct {
	Module sverilog.Module
	MM     *ModuleMap
}

func findTopModule(
	modules map[string]*moduleEntry,
	explicitTop string, hasExplicit bool,
	source *sverilog.SVerilog,
	logger *clilog.Logger,
) (string, error) {
	if len(modules) == 0 {
		logger.Error(TagParse, "source has no modules")
		return "", ErrNoModules
	}
	if hasExplicit {
		if _, ok := modules[explicitTop]; !ok {
			logger.Error(TagTopModule, "named top module %q not found", explicitTop)
			return "", ErrTopNotFound
		}
		return explicitTop, nil
	}
	if len(modules) == 1 {
		for name := range modules {
			return name, nil
		}
	}

	referenced := make(map[string]bool, len(modules))
	for _, md := range source.Modules {
		for _, cell := range md.Module.Cells {
			referenced[cell.MacroName] = true
		}
	}
	var unreferenced []string
	for name := range modules {
		if !referenced[name] {
			unreferenced = append(unreferenced, name)
		}
	}
	sort.Strings(unreferenced)

	switch len(unreferenced) {
	case 1:
		logger.Info(TagGuessTop, "guessed top is %q", unreferenced[0])
		return unreferenced[0], nil
	case 0:
		logger.Error(TagCantGuess, "cyclic references, cannot guess top")
		return "", ErrAmbiguousTop
	default:
		logger.Error(TagCantGuess, "%d potential top modules: %v, please specify", len(unreferenced), unreferenced)
		return "", ErrAmbiguousTop
	}
}

// enumIndices expands a (possibly nil) width into the bit-index sequence
// used to walk that signal: a single nil index for a scalar, or one index
// per bit (in range-iteration order, not normalized) for a vector.
func enumIndices(width *svrange.Range) []*int {
	if width == nil {
		return []*int{nil}
	}
	vals := width.Slice()
	out := make([]*int, len(vals))
	for i, v := range vals {
		vv := v
		out[i] = &vv
	}
	return out
}

func widthLen(w *svrange.Range) int {
	if w == nil {
		return 1
	}
	return w.Len()
}

// buildState is the mutable state threaded through Phase 1 (the recursive
// flattening walk) and the early part of Phase 2 (net discovery).
type buildState struct {
	modules  map[string]*moduleEntry
	lib      LeafPinProvider
	logger   *clilog.Logger
	xzPolicy ConstantXZPolicy

	logicPinIndex map[string]int
	logicPinType  []LogicPinType
	logicPinHier  []hiername.Name
	logicPinName  []string
	logicPinIdx   []*int

	ds *disjointSet

	cellNameToID map[string]int
	cellTypes    []string
	cellNames    []hiername.Name
}

func (s *buildState) getOrInsertLogicPin(hier hiername.Name, name string, idx *int) int {
	k := pinKey(hier, name, idx)
	if id, ok := s.logicPinIndex[k]; ok {
		return id
	}
	id := len(s.logicPinType)
	s.logicPinIndex[k] = id
	s.logicPinType = append(s.logicPinType, Others)
	s.logicPinHier = append(s.logicPinHier, hier)
	s.logicPinName = append(s.logicPinName, name)
	s.logicPinIdx = append(s.logicPinIdx, idx)
	return id
}

func (s *buildState) tryFindLogicPin(hier hiername.Name, name string, idx *int) (int, bool) {
	id, ok := s.logicPinIndex[pinKey(hier, name, idx)]
	return id, ok
}

func (s *buildState) insertCell(hier hiername.Name, macroName string) int {
	id := len(s.cellTypes)
	s.cellNameToID[hier.Key()] = id
	s.cellTypes = append(s.cellTypes, macroName)
	s.cellNames = append(s.cellNames, hier)
	return id
}

func (s *buildState) assignConstBit(pin int, c ExprBit) {
	switch c.Const {
	case bitZero:
		s.ds.setValue(pin, false)
	case bitOne:
		s.ds.setValue(pin, true)
	case bitX:
		s.xzPolicy.AssignX(s.logger, s.ds, pin)
	case bitZ:
		s.xzPolicy.AssignZ(s.logger, s.ds, pin)
	}
}

// estimateSize pre-estimates the (numCells, numLogicPins) a module
// instance will allocate, memoized per module name and guarded against
// recursive instantiation via the parents set.
func (s *buildState) estimateSize(name string, parents map[string]bool, cache map[string][2]int) ([2]int, error) {
	if v, ok := cache[name]; ok {
		return v, nil
	}
	if parents[name] {
		s.logger.Error(TagRecur, "recursive module instantiation at %q", name)
		return [2]int{}, ErrRecursion
	}
	parents[name] = true
	defer delete(parents, name)

	me := s.modules[name]
	numCells, numLogicPins := 0, 0

	for _, def := range me.Module.Defs {
		numLogicPins += widthLen(def.Width)
	}
	for _, port := range me.Module.Ports {
		if port.IsConn() {
			numLogicPins += me.MM.EvalExprLen(port.Conn)
		}
	}
	for _, cell := range me.Module.Cells {
		if _, isModule := s.modules[cell.MacroName]; isModule {
			childCounts, err := s.estimateSize(cell.MacroName, parents, cache)
			if err != nil {
				return [2]int{}, err
			}
			numCells += childCounts[0]
			numLogicPins += childCounts[1]
			continue
		}
		numCells++
		for _, io := range cell.IOPorts {
			numLogicPins += me.MM.EvalExprLen(io.Expr)
		}
	}

	result := [2]int{numCells, numLogicPins}
	cache[name] = result
	return result, nil
}

// buildModules is Phase 1: the recursive hierarchy walk that allocates
// logic pins and unions them via the disjoint set.
func (s *buildState) buildModules(name string, hier hiername.Name) error {
	me := s.modules[name]
	m := me.Module
	mm := me.MM

	for _, def := range m.Defs {
		for _, idx := range enumIndices(def.Width) {
			id := s.getOrInsertLogicPin(hier, def.Name, idx)
			s.logicPinType[id] = Net
		}
	}

	for _, port := range m.Ports {
		if !port.IsConn() {
			continue
		}
		width, present := mm.PortWidths[port.Name]
		if !present {
			continue
		}
		idxs := enumIndices(width)
		bits := mm.ExprBits(port.Conn)
		if len(bits) != len(idxs) {
			s.logger.Error(TagIncompat, "module %q: port %q connection width mismatch", name, port.Name)
			return ErrWidthMismatch
		}
		for i, idx := range idxs {
			portPin := s.getOrInsertLogicPin(hier, port.Name, idx)
			b := bits[i]
			if b.IsConst {
				s.assignConstBit(portPin, b)
				continue
			}
			refID, ok := s.tryFindLogicPin(hier, b.Name, b.Idx)
			if !ok {
				s.logger.Error(TagRef, "module %q: named port %q references undeclared signal %q", name, port.Name, b.Name)
				return ErrMissingLogicPin
			}
			s.ds.merge(portPin, refID)
		}
	}

	for _, cell := range m.Cells {
		childHier := hier.Child(cell.CellName)
		childEntry, isModule := s.modules[cell.MacroName]

		if isModule {
			if err := s.buildModules(cell.MacroName, childHier); err != nil {
				return err
			}
		} else {
			s.insertCell(childHier, cell.MacroName)
		}

		for _, io := range cell.IOPorts {
			exprLen := mm.EvalExprLen(io.Expr)

			var idxs []*int
			if isModule {
				width, present := childEntry.MM.PortWidths[io.PinName]
				if !present {
					continue
				}
				idxs = enumIndices(width)
			} else if exprLen == 1 {
				idxs = []*int{nil}
			} else if r, ok := s.lib.WidthOf(cell.MacroName, io.PinName); ok {
				idxs = enumIndices(&r)
			} else {
				// No declared width for this leaf pin and the connection is
				// wider than one bit: fall back to synthetic 0-based
				// indices so each bit still gets its own logic pin instead
				// of every bit aliasing the same nil-index pin.
				idxs = make([]*int, exprLen)
				for i := 0; i < exprLen; i++ {
					v := i
					idxs[i] = &v
				}
			}

			bits := mm.ExprBits(io.Expr)
			if len(bits) != len(idxs) {
				s.logger.Error(TagIncompat, "cell %q pin %q connection width mismatch", cell.CellName, io.PinName)
				return ErrWidthMismatch
			}

			for i, idx := range idxs {
				var pinID int
				if isModule {
					id, ok := s.tryFindLogicPin(childHier, io.PinName, idx)
					if !ok {
						s.logger.Error(TagRef, "cell %q: submodule port %q bit missing", cell.CellName, io.PinName)
						return ErrMissingLogicPin
					}
					pinID = id
				} else {
					pinID = s.getOrInsertLogicPin(childHier, io.PinName, idx)
					s.logicPinType[pinID] = LeafCellPin
				}

				b := bits[i]
				if b.IsConst {
					s.assignConstBit(pinID, b)
					continue
				}
				refID := s.getOrInsertLogicPin(hier, b.Name, b.Idx)
				if s.logicPinType[refID] == Others {
					s.logicPinType[refID] = Net
				}
				s.ds.merge(pinID, refID)
			}
		}
	}

	for _, as := range m.Assigns {
		lhsLen := mm.EvalExprLen(as.LHS)
		rhsLen := mm.EvalExprLen(as.RHS)
		if lhsLen != rhsLen {
			s.logger.Error(TagIncompat, "module %q: assign width mismatch (%d vs %d)", name, lhsLen, rhsLen)
			return ErrWidthMismatch
		}

		lhsBits := mm.ExprBits(as.LHS)
		rhsBits := mm.ExprBits(as.RHS)
		for i := range lhsBits {
			l, r := lhsBits[i], rhsBits[i]
			switch {
			case !l.IsConst && !r.IsConst:
				lid := s.refLogicPin(hier, l)
				rid := s.refLogicPin(hier, r)
				s.ds.merge(lid, rid)
			case !l.IsConst && r.IsConst:
				lid := s.refLogicPin(hier, l)
				s.assignConstBit(lid, r)
			case l.IsConst && !r.IsConst:
				rid := s.refLogicPin(hier, r)
				s.assignConstBit(rid, l)
			default:
				s.logger.Error(TagLiteral, "module %q: bad literal-to-literal assign", name)
				return ErrLitLitAssign
			}
		}
	}

	return nil
}

// refLogicPin resolves a variable ExprBit to a logic pin, allocating it
// (as a Net) if this is its first mention.
func (s *buildState) refLogicPin(hier hiername.Name, b ExprBit) int {
	id := s.getOrInsertLogicPin(hier, b.Name, b.Idx)
	if s.logicPinType[id] == Others {
		s.logicPinType[id] = Net
	}
	return id
}

// initGraphFromModules runs Phase 1 then Phase 2: net discovery, pin
// filtering, the derived CSR/name tables, and direction assignment.
func initGraphFromModules(
	modules map[string]*moduleEntry,
	topName string,
	lib LeafPinProvider,
	logger *clilog.Logger,
	xzPolicy ConstantXZPolicy,
) (*Database, error) {
	topEntry := modules[topName]

	estimate, err := (&buildState{modules: modules, logger: logger}).estimateSize(topName, map[string]bool{}, map[string][2]int{})
	if err != nil {
		return nil, err
	}
	estCells, estPins := estimate[0]+1, estimate[1]

	s := &buildState{
		modules:       modules,
		lib:           lib,
		logger:        logger,
		xzPolicy:      xzPolicy,
		logicPinIndex: make(map[string]int, estPins),
		logicPinType:  make([]LogicPinType, 0, estPins),
		logicPinHier:  make([]hiername.Name, 0, estPins),
		logicPinName:  make([]string, 0, estPins),
		logicPinIdx:   make([]*int, 0, estPins),
		ds:            newDisjointSet(estPins),
		cellNameToID:  make(map[string]int, estCells),
		cellTypes:     make([]string, 0, estCells),
		cellNames:     make([]hiername.Name, 0, estCells),
	}
	s.insertCell(hiername.Empty, topName)

	timer := logger.StartTimer(TagParse, "build_modules")
	buildErr := s.buildModules(topName, hiername.Empty)
	timer.Finish()
	if buildErr != nil {
		return nil, buildErr
	}

	if len(s.logicPinType) > estPins {
		logger.Warn(TagMorePin, "logic pin count %d exceeded estimate %d", len(s.logicPinType), estPins)
	}

	for _, port := range topEntry.Module.Ports {
		width, present := topEntry.MM.PortWidths[port.Name]
		if !present {
			continue
		}
		for _, idx := range enumIndices(width) {
			if id, ok := s.tryFindLogicPin(hiername.Empty, port.Name, idx); ok {
				s.logicPinType[id] = TopPort
			}
		}
	}

	numLogicPins := len(s.logicPinType)
	numSets, nodeSet, zeroSet, oneSet, ok := s.ds.finalize(numLogicPins)
	if !ok {
		logger.Error(TagLiteral, "constant zero and one connected")
		return nil, ErrConstantCollision
	}

	var pinID2LogicPinID []int
	for i := 0; i < numLogicPins; i++ {
		if s.logicPinType[i].IsPin() {
			pinID2LogicPinID = append(pinID2LogicPinID, i)
		}
	}
	numPins := len(pinID2LogicPinID)
	logicPinIDToPinID := make([]int, numLogicPins)
	for pinID, logicID := range pinID2LogicPinID {
		logicPinIDToPinID[logicID] = pinID
	}

	db := &Database{
		Name:         topName,
		NumCells:     len(s.cellTypes),
		NumLogicPins: numLogicPins,
		NumPins:      numPins,
		NumNets:      numSets,
		CellNameToID: s.cellNameToID,
		CellTypes:    s.cellTypes,
		CellNames:    s.cellNames,
		ConstantNets: make(map[int]bool, 2),
	}
	if zeroSet >= 0 {
		db.ConstantNets[zeroSet] = false
	}
	if oneSet >= 0 {
		db.ConstantNets[oneSet] = true
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		pin2cell := make([]int, numPins)
		pinNameToID := make(map[string]int, numPins)
		for pinID, logicID := range pinID2LogicPinID {
			hier := s.logicPinHier[logicID]
			pin2cell[pinID] = s.cellNameToID[hier.Key()]
			pinNameToID[pinKey(hier, s.logicPinName[logicID], s.logicPinIdx[logicID])] = pinID
		}
		db.Pin2Cell = pin2cell
		db.PinNameToID = pinNameToID
		db.Cell2Pin = buildCSR(db.NumCells, pin2cell)
	}()

	go func() {
		defer wg.Done()
		pinNames := make([]PinName, numPins)
		for pinID, logicID := range pinID2LogicPinID {
			pinNames[pinID] = PinName{
				Hier: s.logicPinHier[logicID],
				Name: s.logicPinName[logicID],
				Idx:  s.logicPinIdx[logicID],
			}
		}
		db.PinNames = pinNames
	}()

	go func() {
		defer wg.Done()
		pin2net := make([]int, numPins)
		for pinID, logicID := range pinID2LogicPinID {
			pin2net[pinID] = nodeSet[logicID]
		}
		db.Pin2Net = pin2net
		db.Net2Pin = buildCSR(numSets, pin2net)
	}()

	go func() {
		defer wg.Done()
		netNames, netNameToID := canonicalNetNames(s, nodeSet, numSets)
		db.NetNames = netNames
		db.NetNameToID = netNameToID
	}()

	go func() {
		defer wg.Done()
		db.PortNameToPinID = buildPortNameToPinID(topEntry, s, logicPinIDToPinID)
	}()

	wg.Wait()

	if err := assignDirections(db, topEntry, s, lib, logicPinIDToPinID, logger); err != nil {
		return nil, err
	}
	if err := postAssignDirection(db, logger); err != nil {
		return nil, err
	}

	return db, nil
}

// canonicalNetNames picks, for each net, the representative (hier, name,
// idx) by lexicographic preference: non-empty name beats empty, shallower
// hierarchy beats deeper, smaller identifier breaks ties.
//
// NetNameToID only ever indexes this one chosen name per net, narrower
// than the original's netname2id, which maps every net-participating
// logic pin name to its net id. §6's external interface only promises
// lookup by canonical name, so this doesn't affect it, but a name other
// than the canonical one (an aliased wire sharing a net with its driver,
// say) will not resolve through NetNameToID.
func canonicalNetNames(s *buildState, nodeSet []int, numSets int) ([]PinName, map[string]int) {
	type candidate struct {
		has   bool
		hier  hiername.Name
		name  string
		idx   *int
		depth int
	}
	chosen := make([]candidate, numSets)

	for i := range s.logicPinType {
		if !s.logicPinType[i].IsNet() {
			continue
		}
		netID := nodeSet[i]
		name := s.logicPinName[i]
		depth := s.logicPinHier[i].Depth()
		cur := chosen[netID]

		better := !cur.has ||
			(cur.name == "" && name != "") ||
			(cur.name != "" && name != "" && depth < cur.depth) ||
			(cur.name != "" && name != "" && depth == cur.depth && name < cur.name)
		if better {
			chosen[netID] = candidate{true, s.logicPinHier[i], name, s.logicPinIdx[i], depth}
		}
	}

	netNames := make([]PinName, numSets)
	netNameToID := make(map[string]int, numSets)
	for netID, c := range chosen {
		netNames[netID] = PinName{Hier: c.hier, Name: c.name, Idx: c.idx}
		netNameToID[pinKey(c.hier, c.name, c.idx)] = netID
	}
	return netNames, netNameToID
}

func portKey(name string, idx *int) string {
	return pinKey(hiername.Empty, name, idx)
}

func buildPortNameToPinID(topEntry *moduleEntry, s *buildState, logicPinIDToPinID []int) map[string]int {
	out := make(map[string]int)
	for _, port := range topEntry.Module.Ports {
		width, present := topEntry.MM.PortWidths[port.Name]
		if !present {
			continue
		}
		idxs := enumIndices(width)

		if !port.IsConn() {
			for _, idx := range idxs {
				if id, ok := s.tryFindLogicPin(hiername.Empty, port.Name, idx); ok {
					out[portKey(port.Name, idx)] = logicPinIDToPinID[id]
				}
			}
			continue
		}

		bits := topEntry.MM.ExprBits(port.Conn)
		for i, idx := range idxs {
			b := bits[i]
			if b.IsConst {
				continue
			}
			if id, ok := s.tryFindLogicPin(hiername.Empty, b.Name, b.Idx); ok {
				out[portKey(port.Name, idx)] = logicPinIDToPinID[id]
			}
		}
	}
	return out
}

// assignDirections is Phase 2 step 7: it queries the leaf pin provider for
// every LeafCellPin, then resolves every TopPort's direction from its
// underlying wire definition's declared io kind. A named-port alias whose
// signal is itself a top port pin is left Unknown; the direction is set on
// that signal's pin instead.
func assignDirections(
	db *Database,
	topEntry *moduleEntry,
	s *buildState,
	lib LeafPinProvider,
	logicPinIDToPinID []int,
	logger *clilog.Logger,
) error {
	db.PinDirect = make([]Direction, db.NumPins)

	for logicID := 0; logicID < db.NumLogicPins; logicID++ {
		if !s.logicPinType[logicID].IsPin() {
			continue
		}
		pinID := logicPinIDToPinID[logicID]
		switch s.logicPinType[logicID] {
		case TopPort:
			db.PinDirect[pinID] = Unknown
		case LeafCellPin:
			cellID := db.Pin2Cell[pinID]
			macro := db.CellTypes[cellID]
			db.PinDirect[pinID] = lib.DirectionOf(macro, s.logicPinName[logicID], s.logicPinIdx[logicID])
		}
	}

	assignPortBit := func(portName string, portIdx *int, refName string, refIdx *int) error {
		deftype, ok := topEntry.MM.DefTypes[refName]
		if !ok {
			logger.Error(TagRef, "top port %q refers to undeclared signal %q", portName, refName)
			return ErrUnknownPortRef
		}
		var dir Direction
		switch deftype {
		case sverilog.Input:
			dir = O
		case sverilog.Output:
			dir = I
		case sverilog.InOut:
			dir = Unknown
			logger.Warn(TagInout, "top port %q is inout, direction unknown", portName)
		case sverilog.Wire:
			logger.Error(TagRef, "named port connection %q should not refer to non-io wire %q", portName, refName)
			return ErrNonIOPort
		}
		// A named-port alias of a signal that is itself a top port pin
		// shares that pin's net, so the direction goes on the signal's own
		// pin and the alias pin stays Unknown; otherwise it goes on the
		// port's pin.
		logicID, ok := s.tryFindLogicPin(hiername.Empty, refName, refIdx)
		if !ok || !s.logicPinType[logicID].IsPin() {
			logicID, ok = s.tryFindLogicPin(hiername.Empty, portName, portIdx)
			if !ok {
				return nil
			}
		}
		db.PinDirect[logicPinIDToPinID[logicID]] = dir
		return nil
	}

	for _, port := range topEntry.Module.Ports {
		width, present := topEntry.MM.PortWidths[port.Name]
		if !present {
			continue
		}
		idxs := enumIndices(width)

		if !port.IsConn() {
			for _, idx := range idxs {
				if err := assignPortBit(port.Name, idx, port.Name, idx); err != nil {
					return err
				}
			}
			continue
		}

		bits := topEntry.MM.ExprBits(port.Conn)
		for i, idx := range idxs {
			b := bits[i]
			if b.IsConst {
				logger.Error(TagRef, "top port %q connection bit is a constant", port.Name)
				return ErrConstTopPort
			}
			if err := assignPortBit(port.Name, idx, b.Name, b.Idx); err != nil {
				return err
			}
		}
	}

	numUnknown := 0
	for _, d := range db.PinDirect {
		if d == Unknown {
			numUnknown++
		}
	}
	if numUnknown > 0 && lib.ShouldWarnMissingDirections() {
		logger.Warn(TagDirUnk, "%d pins have unknown direction", numUnknown)
	}

	return nil
}

// postAssignDirection is Phase 2 steps 8-9: driver canonicalization (swap
// each net's unique O-direction pin to the front of its CSR slice) and the
// per-cell output pin count.
func postAssignDirection(db *Database, logger *clilog.Logger) error {
	undriven := 0
	for netID := 0; netID < db.NumNets; netID++ {
		items := db.Net2Pin.Set(netID)
		driverPos, driverCount := -1, 0
		for i, pinID := range items {
			if db.PinDirect[pinID] == O {
				driverCount++
				driverPos = i
			}
		}
		switch driverCount {
		case 1:
			items[0], items[driverPos] = items[driverPos], items[0]
		case 0:
			if _, isConst := db.ConstantNets[netID]; !isConst {
				undriven++
			}
		default:
			logger.Error(TagNetIO, "net %d (%s) has %d drivers, must have exactly one", netID, db.NetNames[netID].Name, driverCount)
			return ErrMultiDriver
		}
	}
	if undriven > 0 {
		logger.Warn(TagUndriven, "%d nets have no driver", undriven)
	}

	db.Cell2NOutputs = make([]int, db.NumCells)
	for cellID := 0; cellID < db.NumCells; cellID++ {
		for _, pinID := range db.Cell2Pin.Set(cellID) {
			if db.PinDirect[pinID] == O {
				db.Cell2NOutputs[cellID]++
			}
		}
	}
	return nil
}
