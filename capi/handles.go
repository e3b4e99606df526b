package capi

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ecmwf/plume/internal/perr"
)

// table is a registry mapping an opaque handle id to a live Go object.
// cgo forbids storing a Go pointer inside C memory, so every "handle" the C
// side holds is really a UUID string key into one of these tables — the Go
// object itself never crosses the boundary.
type table struct {
	mu      sync.Mutex
	objects map[string]interface{}
}

func newTable() *table {
	return &table{objects: map[string]interface{}{}}
}

func (t *table) put(obj interface{}) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.objects[id] = obj
	t.mu.Unlock()
	return id
}

func (t *table) get(id string) (interface{}, error) {
	t.mu.Lock()
	obj, ok := t.objects[id]
	t.mu.Unlock()
	if !ok {
		return nil, perr.New(perr.NotFound, "no object registered under handle %q", id)
	}
	return obj, nil
}

func (t *table) delete(id string) {
	t.mu.Lock()
	delete(t.objects, id)
	t.mu.Unlock()
}

var (
	protocolTable  = newTable()
	managerTable   = newTable()
	modelDataTable = newTable()
)
