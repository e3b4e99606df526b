package capi

/*
#include <stdlib.h>
*/
import "C"

import (
	"github.com/ecmwf/plume/catalogue"
	"github.com/ecmwf/plume/internal/perr"
	"github.com/ecmwf/plume/protocol"
)

func protocolByHandle(handle *C.char) (*protocol.Protocol, error) {
	obj, err := protocolTable.get(C.GoString(handle))
	if err != nil {
		return nil, err
	}
	p, ok := obj.(*protocol.Protocol)
	if !ok {
		return nil, perr.New(perr.BadValue, "handle does not refer to a protocol")
	}
	return p, nil
}

//export plume_protocol_create
func plume_protocol_create(coreVersion, fieldLibVersion *C.char) *C.char {
	p := protocol.New(nil, C.GoString(coreVersion), C.GoString(fieldLibVersion))
	return C.CString(protocolTable.put(p))
}

//export plume_protocol_destroy
func plume_protocol_destroy(handle *C.char) {
	protocolTable.delete(C.GoString(handle))
}

func protocolRequireT(handle *C.char, name *C.char, t catalogue.ParameterType) C.int {
	return envelope(func() error {
		p, err := protocolByHandle(handle)
		if err != nil {
			return err
		}
		switch t {
		case catalogue.Int:
			p.RequireInt(C.GoString(name))
		case catalogue.Bool:
			p.RequireBool(C.GoString(name))
		case catalogue.Float:
			p.RequireFloat(C.GoString(name))
		case catalogue.Double:
			p.RequireDouble(C.GoString(name))
		case catalogue.String:
			p.RequireString(C.GoString(name))
		case catalogue.AtlasField:
			p.RequireAtlasField(C.GoString(name))
		}
		return nil
	})
}

func protocolOfferT(handle, name *C.char, t catalogue.ParameterType, availability, comment *C.char) C.int {
	return envelope(func() error {
		p, err := protocolByHandle(handle)
		if err != nil {
			return err
		}
		avail, err := catalogue.ParseAvailability(C.GoString(availability))
		if err != nil {
			return err
		}
		switch t {
		case catalogue.Int:
			p.OfferInt(C.GoString(name), avail, C.GoString(comment))
		case catalogue.Bool:
			p.OfferBool(C.GoString(name), avail, C.GoString(comment))
		case catalogue.Float:
			p.OfferFloat(C.GoString(name), avail, C.GoString(comment))
		case catalogue.Double:
			p.OfferDouble(C.GoString(name), avail, C.GoString(comment))
		case catalogue.String:
			p.OfferString(C.GoString(name), avail, C.GoString(comment))
		case catalogue.AtlasField:
			p.OfferAtlasField(C.GoString(name), avail, C.GoString(comment))
		}
		return nil
	})
}

//export plume_protocol_require_int
func plume_protocol_require_int(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.Int)
}

//export plume_protocol_require_bool
func plume_protocol_require_bool(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.Bool)
}

//export plume_protocol_require_float
func plume_protocol_require_float(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.Float)
}

//export plume_protocol_require_double
func plume_protocol_require_double(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.Double)
}

//export plume_protocol_require_string
func plume_protocol_require_string(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.String)
}

//export plume_protocol_require_atlas_field
func plume_protocol_require_atlas_field(handle, name *C.char) C.int {
	return protocolRequireT(handle, name, catalogue.AtlasField)
}

//export plume_protocol_offer_int
func plume_protocol_offer_int(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.Int, availability, comment)
}

//export plume_protocol_offer_bool
func plume_protocol_offer_bool(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.Bool, availability, comment)
}

//export plume_protocol_offer_float
func plume_protocol_offer_float(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.Float, availability, comment)
}

//export plume_protocol_offer_double
func plume_protocol_offer_double(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.Double, availability, comment)
}

//export plume_protocol_offer_string
func plume_protocol_offer_string(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.String, availability, comment)
}

//export plume_protocol_offer_atlas_field
func plume_protocol_offer_atlas_field(handle, name, availability, comment *C.char) C.int {
	return protocolOfferT(handle, name, catalogue.AtlasField, availability, comment)
}
