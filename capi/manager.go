package capi

/*
#include <stdlib.h>
*/
import "C"

import (
	"github.com/ecmwf/plume/config"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/manager"
)

func managerByHandle(handle *C.char) (*manager.Manager, error) {
	obj, err := managerTable.get(C.GoString(handle))
	if err != nil {
		return nil, err
	}
	m, ok := obj.(*manager.Manager)
	if !ok {
		return nil, perr.New(perr.BadValue, "handle does not refer to a manager")
	}
	return m, nil
}

//export plume_manager_create
func plume_manager_create(libraryDir *C.char) *C.char {
	m := manager.New(nil, manager.NewNativeLoader(C.GoString(libraryDir)), nil, nil)
	return C.CString(managerTable.put(m))
}

//export plume_manager_destroy
func plume_manager_destroy(handle *C.char) {
	managerTable.delete(C.GoString(handle))
}

//export plume_manager_configure
func plume_manager_configure(handle, yamlConfig *C.char) C.int {
	return envelope(func() error {
		m, err := managerByHandle(handle)
		if err != nil {
			return err
		}
		cfg, err := config.ParseManagerConfig([]byte(C.GoString(yamlConfig)))
		if err != nil {
			return err
		}
		return m.Configure(cfg)
	})
}

//export plume_manager_negotiate
func plume_manager_negotiate(handle, offersHandle *C.char) C.int {
	return envelope(func() error {
		m, err := managerByHandle(handle)
		if err != nil {
			return err
		}
		offers, err := protocolByHandle(offersHandle)
		if err != nil {
			return err
		}
		return m.Negotiate(offers)
	})
}

//export plume_manager_feed
func plume_manager_feed(handle, dataHandle *C.char) C.int {
	return envelope(func() error {
		m, err := managerByHandle(handle)
		if err != nil {
			return err
		}
		data, err := modelDataByHandle(dataHandle)
		if err != nil {
			return err
		}
		return m.FeedPlugins(data)
	})
}

//export plume_manager_run
func plume_manager_run(handle *C.char) C.int {
	return envelope(func() error {
		m, err := managerByHandle(handle)
		if err != nil {
			return err
		}
		return m.Run()
	})
}

//export plume_manager_teardown
func plume_manager_teardown(handle *C.char) C.int {
	return envelope(func() error {
		m, err := managerByHandle(handle)
		if err != nil {
			return err
		}
		return m.Teardown()
	})
}
