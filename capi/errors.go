// Package capi exposes plume's Protocol/Manager/ModelData types through a C
// ABI of opaque handles, for use from languages other than Go (spec.md
// §4.8). Every entry point that performs a fallible operation returns an
// error code from {0, 1, 2} and, on failure, records a message retrievable
// through plume_error_string — mirroring the reference implementation's
// thread-local last-error slot and {0,1,2} envelope. The handle
// create/destroy functions return a handle string or nothing, and the
// string-valued getters (plume_data_get_string,
// plume_data_get_atlas_field_shared) return NULL on failure and record the
// message in the same slot.
package capi

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/ecmwf/plume/internal/perr"
)

// Error codes returned by every exported function that goes through
// envelope (spec.md §4.8).
const (
	codeOK      = 0
	codeDomain  = 1
	codeUnknown = 2
)

// lastError is a per-goroutine-id-free, process-wide "thread-local-ish"
// slot: real thread-local storage isn't exposed to cgo callers without a
// native per-thread key, so this is guarded by a mutex instead. Handles
// are documented as not safe to use across threads concurrently anyway
// (spec.md §4.8), which keeps contention here negligible in practice.
var lastErrorMu sync.Mutex
var lastError string

func setLastError(msg string) {
	lastErrorMu.Lock()
	lastError = msg
	lastErrorMu.Unlock()
}

func clearLastError() {
	setLastError("")
}

// envelope runs fn, translating its error (if any) into a {0,1,2} code and
// recording a message in the last-error slot.
func envelope(fn func() error) C.int {
	clearLastError()
	err := fn()
	if err == nil {
		return codeOK
	}
	if _, ok := err.(*perr.Error); ok {
		setLastError(err.Error())
		return codeDomain
	}
	setLastError(err.Error())
	return codeUnknown
}

//export plume_error_string
func plume_error_string() *C.char {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return C.CString(lastError)
}

//export plume_free_string
func plume_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}
