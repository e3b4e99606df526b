// Package modeldata implements the host/plugin data exchange container
// (spec.md §3 "ModelData", §4.2).
package modeldata

import (
	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
)

// AtlasFieldHandle is the opaque external gridded-field reference plume
// carries but never interprets (spec.md §3). The gridded-field library
// (out of scope) implements it; Retain/Release follow that library's own
// reference-counting discipline.
type AtlasFieldHandle interface {
	Retain() AtlasFieldHandle
	Release()
	Valid() bool
}

// ParameterValue is a tagged cell holding exactly one of: a borrowed pointer
// to a host-owned scalar, a core-owned scalar, or a shared external field
// handle (spec.md §3). The type tag never changes after construction.
type ParameterValue struct {
	kind     catalogue.ParameterType
	scalar   any
	borrowed bool
	owns     bool
	field    AtlasFieldHandle
}

// Kind reports the ParameterType this cell was constructed with.
func (v *ParameterValue) Kind() catalogue.ParameterType { return v.kind }

// Owns reports whether this cell owns its storage. Only owning cells may be
// mutated through update* (spec.md §3).
func (v *ParameterValue) Owns() bool { return v.owns }

// Borrowed reports whether this cell is a borrowed view onto host memory.
func (v *ParameterValue) Borrowed() bool { return v.borrowed }

func newBorrowedScalar(kind catalogue.ParameterType, scalar any) *ParameterValue {
	return &ParameterValue{kind: kind, scalar: scalar, borrowed: true, owns: false}
}

func newOwnedScalar(kind catalogue.ParameterType, initial any) *ParameterValue {
	return &ParameterValue{kind: kind, scalar: initial, borrowed: false, owns: true}
}

func newFieldHandle(handle AtlasFieldHandle) *ParameterValue {
	return &ParameterValue{kind: catalogue.AtlasField, field: handle, borrowed: false, owns: false}
}

// scalarAs type-checks and returns the underlying scalar, failing with
// perr.TypeMismatch when kind does not match the cell's tag (spec.md §3's
// "get<T>() on a mismatched tag fails with type-mismatch").
func (v *ParameterValue) scalarAs(name string, kind catalogue.ParameterType) (any, error) {
	if v.kind != kind {
		return nil, perr.New(perr.TypeMismatch, "parameter %q is %s, not %s", name, v.kind, kind)
	}
	return v.scalar, nil
}

// setScalar mutates an owning cell's scalar, failing with
// perr.UnownedMutation when called on a borrowed cell (spec.md §3).
func (v *ParameterValue) setScalar(name string, kind catalogue.ParameterType, val any) error {
	if v.kind != kind {
		return perr.New(perr.TypeMismatch, "parameter %q is %s, not %s", name, v.kind, kind)
	}
	if !v.owns {
		return perr.New(perr.UnownedMutation, "parameter %q is borrowed, cannot update", name)
	}
	v.scalar = val
	return nil
}

func (v *ParameterValue) atlasField(name string) (AtlasFieldHandle, error) {
	if v.kind != catalogue.AtlasField {
		return nil, perr.New(perr.TypeMismatch, "parameter %q is %s, not %s", name, v.kind, catalogue.AtlasField)
	}
	return v.field.Retain(), nil
}
