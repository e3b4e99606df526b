package capi

/*
#include <stdbool.h>
*/
import "C"

import (
	"unsafe"

	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/modeldata"
)

func modelDataByHandle(handle *C.char) (*modeldata.ModelData, error) {
	obj, err := modelDataTable.get(C.GoString(handle))
	if err != nil {
		return nil, err
	}
	d, ok := obj.(*modeldata.ModelData)
	if !ok {
		return nil, perr.New(perr.BadValue, "handle does not refer to model data")
	}
	return d, nil
}

//export plume_data_create
func plume_data_create() *C.char {
	return C.CString(modelDataTable.put(modeldata.New(nil)))
}

//export plume_data_destroy
func plume_data_destroy(handle *C.char) {
	modelDataTable.delete(C.GoString(handle))
}

// --- INT ---

// plume_data_provide_int takes a pointer to a 64-bit C integer rather than
// the plain C int the reference header uses: Go's native int is 64-bit on
// every platform this module targets, while cgo's C.int always maps to a
// 32-bit value, so aliasing a C.int directly as *int would read/write past
// the end of the host's 4-byte allocation. A same-width C.longlong keeps
// the borrowed pointer memory-safe on both sides of the boundary.
//
//export plume_data_provide_int
func plume_data_provide_int(handle, name *C.char, ptr *C.longlong) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.ProvideInt(C.GoString(name), (*int)(unsafe.Pointer(ptr)))
		return nil
	})
}

//export plume_data_create_int
func plume_data_create_int(handle, name *C.char, initial C.int) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.CreateInt(C.GoString(name), int(initial))
		return nil
	})
}

//export plume_data_update_int
func plume_data_update_int(handle, name *C.char, value C.int) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.UpdateInt(C.GoString(name), int(value))
	})
}

//export plume_data_get_int
func plume_data_get_int(handle, name *C.char, out *C.int) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		v, err := d.GetInt(C.GoString(name))
		if err != nil {
			return err
		}
		*out = C.int(v)
		return nil
	})
}

// --- BOOL ---

//export plume_data_provide_bool
func plume_data_provide_bool(handle, name *C.char, ptr *C.bool) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.ProvideBool(C.GoString(name), (*bool)(unsafe.Pointer(ptr)))
		return nil
	})
}

//export plume_data_create_bool
func plume_data_create_bool(handle, name *C.char, initial C.bool) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.CreateBool(C.GoString(name), bool(initial))
		return nil
	})
}

//export plume_data_update_bool
func plume_data_update_bool(handle, name *C.char, value C.bool) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.UpdateBool(C.GoString(name), bool(value))
	})
}

//export plume_data_get_bool
func plume_data_get_bool(handle, name *C.char, out *C.bool) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		v, err := d.GetBool(C.GoString(name))
		if err != nil {
			return err
		}
		*out = C.bool(v)
		return nil
	})
}

// --- FLOAT ---

//export plume_data_provide_float
func plume_data_provide_float(handle, name *C.char, ptr *C.float) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.ProvideFloat(C.GoString(name), (*float32)(unsafe.Pointer(ptr)))
		return nil
	})
}

//export plume_data_create_float
func plume_data_create_float(handle, name *C.char, initial C.float) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.CreateFloat(C.GoString(name), float32(initial))
		return nil
	})
}

//export plume_data_update_float
func plume_data_update_float(handle, name *C.char, value C.float) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.UpdateFloat(C.GoString(name), float32(value))
	})
}

//export plume_data_get_float
func plume_data_get_float(handle, name *C.char, out *C.float) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		v, err := d.GetFloat(C.GoString(name))
		if err != nil {
			return err
		}
		*out = C.float(v)
		return nil
	})
}

// --- DOUBLE ---

//export plume_data_provide_double
func plume_data_provide_double(handle, name *C.char, ptr *C.double) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.ProvideDouble(C.GoString(name), (*float64)(unsafe.Pointer(ptr)))
		return nil
	})
}

//export plume_data_create_double
func plume_data_create_double(handle, name *C.char, initial C.double) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.CreateDouble(C.GoString(name), float64(initial))
		return nil
	})
}

//export plume_data_update_double
func plume_data_update_double(handle, name *C.char, value C.double) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.UpdateDouble(C.GoString(name), float64(value))
	})
}

//export plume_data_get_double
func plume_data_get_double(handle, name *C.char, out *C.double) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		v, err := d.GetDouble(C.GoString(name))
		if err != nil {
			return err
		}
		*out = C.double(v)
		return nil
	})
}

// --- STRING ---

//export plume_data_create_string
func plume_data_create_string(handle, name, initial *C.char) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		d.CreateString(C.GoString(name), C.GoString(initial))
		return nil
	})
}

//export plume_data_update_string
func plume_data_update_string(handle, name, value *C.char) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.UpdateString(C.GoString(name), C.GoString(value))
	})
}

//export plume_data_get_string
func plume_data_get_string(handle, name *C.char) *C.char {
	d, err := modelDataByHandle(handle)
	if err != nil {
		setLastError(err.Error())
		return nil
	}
	v, err := d.GetString(C.GoString(name))
	if err != nil {
		setLastError(err.Error())
		return nil
	}
	clearLastError()
	return C.CString(v)
}

// --- ATLAS_FIELD ---

// externalFieldHandle adapts a capi-side handle id so the shared-field
// table (external library's own object) can be carried through ModelData
// without this package interpreting it, matching modeldata.AtlasFieldHandle.
type externalFieldHandle struct {
	id    string
	valid bool
}

func (h *externalFieldHandle) Retain() modeldata.AtlasFieldHandle { return h }
func (h *externalFieldHandle) Release()                           {}
func (h *externalFieldHandle) Valid() bool                        { return h.valid }

//export plume_data_provide_atlas_field_shared
func plume_data_provide_atlas_field_shared(handle, name, fieldID *C.char) C.int {
	return envelope(func() error {
		d, err := modelDataByHandle(handle)
		if err != nil {
			return err
		}
		return d.ProvideAtlasFieldShared(C.GoString(name), &externalFieldHandle{id: C.GoString(fieldID), valid: true})
	})
}

//export plume_data_get_atlas_field_shared
func plume_data_get_atlas_field_shared(handle, name *C.char) *C.char {
	d, err := modelDataByHandle(handle)
	if err != nil {
		setLastError(err.Error())
		return nil
	}
	fh, err := d.GetAtlasFieldShared(C.GoString(name))
	if err != nil {
		setLastError(err.Error())
		return nil
	}
	ext, ok := fh.(*externalFieldHandle)
	if !ok {
		setLastError("atlas field handle was not provided through the C ABI")
		return nil
	}
	clearLastError()
	return C.CString(ext.id)
}
