// Package registry keeps an in-memory view of the Bluetooth controllers
// known to the kernel.
//
// The registry is a pure cache: it never talks to the kernel itself. The
// dispatcher feeds it every decoded event and every successful reply
// through the dispatch.Observer hook, and the registry folds them into one
// ControllerState per controller index.
//
// Readers never lock. All state lives in an immutable map behind an
// atomic pointer; writers copy the map, apply the change and swap the
// pointer under a mutex. A Snapshot therefore always reflects a whole
// update, never half of one.
package registry
