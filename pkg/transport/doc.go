// Package transport owns the Bluetooth management socket and delimits the
// byte stream into frames.
//
// The management channel is a raw HCI socket bound to the control channel
// of the non-controller device:
//
//	socket(AF_BLUETOOTH, SOCK_RAW|SOCK_CLOEXEC|SOCK_NONBLOCK, BTPROTO_HCI)
//	bind({HCI_DEV_NONE, HCI_CHANNEL_CONTROL})
//
// Binding requires CAP_NET_ADMIN. Open maps the kernel's refusals to
// ErrPermissionDenied and ErrNotSupported so callers can tell a missing
// capability from a kernel without Bluetooth.
//
// # Framing
//
// Every frame starts with the 6-byte little-endian header (code, index,
// length) followed by exactly length parameter bytes. The kernel delivers
// one frame per read, but NewConn accepts any byte stream, so the reader
// buffers partial frames and never yields anything but whole frames.
//
// # Frames
//
// Conn.Frames is a single-use iterator. It ends with a final
// ErrTransportClosed yield when the peer closes the stream or Close is
// called, which is the signal the dispatcher uses to fail pending commands.
package transport
