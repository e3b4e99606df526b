package modeldata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/logging"
)

// ModelData maps parameter name to ParameterValue (spec.md §3, §4.2). Names
// are unique; insertion order is not significant. Cells are held by pointer
// so that filter's results share mutation visibility with their source
// (spec.md §4.2's "filter... sharing same value cells").
type ModelData struct {
	log  logging.Logger
	data map[string]*ParameterValue
}

// New returns an empty ModelData.
func New(log logging.Logger) *ModelData {
	if log == nil {
		log = logging.NoOp{}
	}
	return &ModelData{log: log, data: map[string]*ParameterValue{}}
}

func (m *ModelData) insert(name string, v *ParameterValue) {
	if _, ok := m.data[name]; ok {
		m.log.Warn("parameter %q already present in model data, keeping first", name)
		return
	}
	m.data[name] = v
}

func (m *ModelData) cell(name string) (*ParameterValue, error) {
	v, ok := m.data[name]
	if !ok {
		return nil, perr.New(perr.NotFound, "no parameter named %q in model data", name)
	}
	return v, nil
}

// HasParameter reports membership, optionally requiring a matching type. If
// t is non-empty and the parameter is present with a different type, this
// fails with perr.TypeMismatch rather than silently returning false
// (spec.md §4.2).
func (m *ModelData) HasParameter(name string, t catalogue.ParameterType) (bool, error) {
	v, ok := m.data[name]
	if !ok {
		return false, nil
	}
	if t == "" || v.kind == t {
		return true, nil
	}
	return false, perr.New(perr.TypeMismatch, "parameter %q is %s, not %s", name, v.kind, t)
}

// Filter returns a new ModelData containing exactly the named parameters,
// sharing the same underlying cells as the source (spec.md §4.2).
func (m *ModelData) Filter(names []string) (*ModelData, error) {
	out := New(m.log)
	for _, name := range names {
		v, err := m.cell(name)
		if err != nil {
			return nil, err
		}
		out.data[name] = v
	}
	return out, nil
}

// FilterCatalogue is Filter by the names in a catalogue, preserving the
// catalogue's order.
func (m *ModelData) FilterCatalogue(c *catalogue.Catalogue) (*ModelData, error) {
	return m.Filter(c.Names())
}

// ListAvailableParameters returns the names of every parameter currently
// held whose kind matches typeFilter, or every name if typeFilter is empty
// (spec.md §4.2).
func (m *ModelData) ListAvailableParameters(typeFilter catalogue.ParameterType) []string {
	out := make([]string, 0, len(m.data))
	for name, v := range m.data {
		if typeFilter == "" || v.kind == typeFilter {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Print renders a deterministic, human-readable summary of every parameter
// currently held, primarily for diagnostics (spec.md §4.2 "print").
func (m *ModelData) Print() string {
	names := m.ListAvailableParameters("")
	var b strings.Builder
	for _, name := range names {
		v := m.data[name]
		mode := "borrowed"
		if v.owns {
			mode = "owned"
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", name, v.kind, mode)
	}
	return b.String()
}

// --- INT ---

func (m *ModelData) ProvideInt(name string, ptr *int) {
	m.insert(name, newBorrowedScalar(catalogue.Int, ptr))
}

func (m *ModelData) CreateInt(name string, initial int) {
	m.insert(name, newOwnedScalar(catalogue.Int, initial))
}

func (m *ModelData) UpdateInt(name string, val int) error {
	v, err := m.cell(name)
	if err != nil {
		return err
	}
	return v.setScalar(name, catalogue.Int, val)
}

func (m *ModelData) GetInt(name string) (int, error) {
	v, err := m.cell(name)
	if err != nil {
		return 0, err
	}
	s, err := v.scalarAs(name, catalogue.Int)
	if err != nil {
		return 0, err
	}
	if ptr, ok := s.(*int); ok {
		return *ptr, nil
	}
	return s.(int), nil
}

// --- BOOL ---

func (m *ModelData) ProvideBool(name string, ptr *bool) {
	m.insert(name, newBorrowedScalar(catalogue.Bool, ptr))
}

func (m *ModelData) CreateBool(name string, initial bool) {
	m.insert(name, newOwnedScalar(catalogue.Bool, initial))
}

func (m *ModelData) UpdateBool(name string, val bool) error {
	v, err := m.cell(name)
	if err != nil {
		return err
	}
	return v.setScalar(name, catalogue.Bool, val)
}

func (m *ModelData) GetBool(name string) (bool, error) {
	v, err := m.cell(name)
	if err != nil {
		return false, err
	}
	s, err := v.scalarAs(name, catalogue.Bool)
	if err != nil {
		return false, err
	}
	if ptr, ok := s.(*bool); ok {
		return *ptr, nil
	}
	return s.(bool), nil
}

// --- FLOAT ---

func (m *ModelData) ProvideFloat(name string, ptr *float32) {
	m.insert(name, newBorrowedScalar(catalogue.Float, ptr))
}

func (m *ModelData) CreateFloat(name string, initial float32) {
	m.insert(name, newOwnedScalar(catalogue.Float, initial))
}

func (m *ModelData) UpdateFloat(name string, val float32) error {
	v, err := m.cell(name)
	if err != nil {
		return err
	}
	return v.setScalar(name, catalogue.Float, val)
}

func (m *ModelData) GetFloat(name string) (float32, error) {
	v, err := m.cell(name)
	if err != nil {
		return 0, err
	}
	s, err := v.scalarAs(name, catalogue.Float)
	if err != nil {
		return 0, err
	}
	if ptr, ok := s.(*float32); ok {
		return *ptr, nil
	}
	return s.(float32), nil
}

// --- DOUBLE ---

func (m *ModelData) ProvideDouble(name string, ptr *float64) {
	m.insert(name, newBorrowedScalar(catalogue.Double, ptr))
}

func (m *ModelData) CreateDouble(name string, initial float64) {
	m.insert(name, newOwnedScalar(catalogue.Double, initial))
}

func (m *ModelData) UpdateDouble(name string, val float64) error {
	v, err := m.cell(name)
	if err != nil {
		return err
	}
	return v.setScalar(name, catalogue.Double, val)
}

func (m *ModelData) GetDouble(name string) (float64, error) {
	v, err := m.cell(name)
	if err != nil {
		return 0, err
	}
	s, err := v.scalarAs(name, catalogue.Double)
	if err != nil {
		return 0, err
	}
	if ptr, ok := s.(*float64); ok {
		return *ptr, nil
	}
	return s.(float64), nil
}

// --- STRING ---

func (m *ModelData) ProvideString(name string, ptr *string) {
	m.insert(name, newBorrowedScalar(catalogue.String, ptr))
}

func (m *ModelData) CreateString(name string, initial string) {
	m.insert(name, newOwnedScalar(catalogue.String, initial))
}

func (m *ModelData) UpdateString(name string, val string) error {
	v, err := m.cell(name)
	if err != nil {
		return err
	}
	return v.setScalar(name, catalogue.String, val)
}

func (m *ModelData) GetString(name string) (string, error) {
	v, err := m.cell(name)
	if err != nil {
		return "", err
	}
	s, err := v.scalarAs(name, catalogue.String)
	if err != nil {
		return "", err
	}
	if ptr, ok := s.(*string); ok {
		return *ptr, nil
	}
	return s.(string), nil
}

// --- ATLAS_FIELD ---

// ProvideAtlasFieldShared inserts an external-handle cell. The handle must
// be valid at insertion time (spec.md §4.2 precondition "handle readable").
func (m *ModelData) ProvideAtlasFieldShared(name string, handle AtlasFieldHandle) error {
	if handle == nil || !handle.Valid() {
		return perr.New(perr.Precondition, "atlas field handle for %q is not readable", name)
	}
	m.insert(name, newFieldHandle(handle))
	return nil
}

// GetAtlasFieldShared returns the handle, incrementing its reference count
// per the external library's own discipline (spec.md §4.2).
func (m *ModelData) GetAtlasFieldShared(name string) (AtlasFieldHandle, error) {
	v, err := m.cell(name)
	if err != nil {
		return nil, err
	}
	return v.atlasField(name)
}
