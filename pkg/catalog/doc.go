// Package catalog defines the typed commands, replies and events of the
// Bluetooth management protocol.
//
// Every command is a struct implementing Command. It knows its opcode,
// whether it addresses a controller or the global index, how to validate
// and encode its parameters, and which Reply type decodes the return
// parameters of its Command Complete event:
//
//	cmd := &catalog.SetDiscoverable{Mode: catalog.DiscoverableGeneral}
//	frame, err := catalog.EncodeCommand(0, cmd)
//
// Events implement Event and are looked up by event code:
//
//	ev, err := catalog.DecodeEvent(frame)
//	switch e := ev.(type) {
//	case *catalog.NewSettings:
//	    ...
//	}
//
// # Extension
//
// The catalog is the single place that knows parameter layouts. New
// command or event variants are added by implementing the interfaces and
// registering a constructor with RegisterCommand or RegisterEvent; the
// dispatcher and transport need no changes.
//
// # Validation
//
// EncodeCommand validates the controller index scope and the command's
// parameters before producing any bytes. Failures wrap ErrInvalidParameter.
package catalog
