// Package btmgmt is the entry point for talking to the Linux Bluetooth
// management interface.
//
// A Client owns one management socket. It wires the socket transport, the
// command dispatcher, the controller registry and the reconnect manager
// together:
//
//	c, err := btmgmt.Open(ctx, btmgmt.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	settings, err := c.SetSetting(ctx, 0, wire.SettingPowered, true)
//
// Open reads the controller index list and every controller's information
// before it returns, so Controllers is populated from the start. The
// registry then follows kernel events. After the socket is lost and
// reopened the registry is rebuilt the same way; subscriptions taken on
// the lost socket end with dispatch.ErrTransportClosed and must be taken
// again.
package btmgmt
