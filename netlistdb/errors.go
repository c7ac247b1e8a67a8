package netlistdb

import "errors"

// Sentinel errors returned as-is by Builder.Build and friends, after the
// explaining diagnostic has been logged. Callers match them with errors.Is.
var (
	// ErrRecursion is returned when the module hierarchy contains a cycle
	// (a module instantiating itself, directly or transitively).
	ErrRecursion = errors.New("netlistdb: recursive module instantiation")

	// ErrAmbiguousTop is returned when no top module was named and more
	// than one (or zero) module is unreferenced as a cell macro.
	ErrAmbiguousTop = errors.New("netlistdb: cannot guess top module")

	// ErrTopNotFound is returned when an explicitly named top module does
	// not exist in the parsed source.
	ErrTopNotFound = errors.New("netlistdb: named top module not found")

	// ErrNoModules is returned when the parsed source has no modules.
	ErrNoModules = errors.New("netlistdb: source has no modules")

	// ErrWidthMismatch is returned when an assign's two sides evaluate to
	// different bit widths.
	ErrWidthMismatch = errors.New("netlistdb: assign width mismatch")

	// ErrLitLitAssign is returned for `assign <literal> = <literal>;`,
	// which can never be satisfied unless the values already agree, and
	// is rejected unconditionally since it cannot drive anything.
	ErrLitLitAssign = errors.New("netlistdb: assign between two literals")

	// ErrMissingLogicPin is returned when an expression references a
	// signal bit that was never declared.
	ErrMissingLogicPin = errors.New("netlistdb: reference to undeclared signal")

	// ErrConstantCollision is returned when the same net is tied to both
	// constant 0 and constant 1.
	ErrConstantCollision = errors.New("netlistdb: net tied to both 0 and 1")

	// ErrMultiDriver is returned when a net has more than one output-
	// direction pin.
	ErrMultiDriver = errors.New("netlistdb: net has more than one driver")

	// ErrNonIOPort is returned when a top-module named-port connection
	// refers to a plain (non input/output/inout) wire.
	ErrNonIOPort = errors.New("netlistdb: named port connection refers to a non-io wire")

	// ErrUnknownPortRef is returned when a top-module port's connection
	// expression refers to an undeclared identifier.
	ErrUnknownPortRef = errors.New("netlistdb: top port refers to an undeclared signal")

	// ErrConstTopPort is returned when a top-module named-port connection
	// bit is a constant rather than a signal reference; direction
	// assignment has nothing to attach a direction to in that case.
	ErrConstTopPort = errors.New("netlistdb: top port connection cannot be a constant")
)
