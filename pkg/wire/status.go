package wire

// Status is a management command status code.
type Status uint8

const (
	// StatusSuccess indicates the command completed successfully.
	StatusSuccess Status = 0x00

	// StatusUnknownCommand indicates the kernel does not know the opcode.
	StatusUnknownCommand Status = 0x01

	// StatusNotConnected indicates the remote device is not connected.
	StatusNotConnected Status = 0x02

	// StatusFailed indicates a generic failure.
	StatusFailed Status = 0x03

	// StatusConnectFailed indicates the connection attempt failed.
	StatusConnectFailed Status = 0x04

	// StatusAuthenticationFailed indicates pairing or authentication failed.
	StatusAuthenticationFailed Status = 0x05

	// StatusNotPaired indicates the device is not paired.
	StatusNotPaired Status = 0x06

	// StatusNoResources indicates the kernel ran out of resources.
	StatusNoResources Status = 0x07

	// StatusTimeout indicates the operation timed out in the kernel.
	StatusTimeout Status = 0x08

	// StatusAlreadyConnected indicates the device is already connected.
	StatusAlreadyConnected Status = 0x09

	// StatusBusy indicates another operation is in progress.
	StatusBusy Status = 0x0A

	// StatusRejected indicates the request was rejected.
	StatusRejected Status = 0x0B

	// StatusNotSupported indicates the controller does not support the operation.
	StatusNotSupported Status = 0x0C

	// StatusInvalidParams indicates the kernel rejected the parameters.
	StatusInvalidParams Status = 0x0D

	// StatusDisconnected indicates the device disconnected during the operation.
	StatusDisconnected Status = 0x0E

	// StatusNotPowered indicates the controller is powered off.
	StatusNotPowered Status = 0x0F

	// StatusCancelled indicates the operation was cancelled.
	StatusCancelled Status = 0x10

	// StatusInvalidIndex indicates the controller index does not exist.
	StatusInvalidIndex Status = 0x11

	// StatusRFKilled indicates the controller is blocked by rfkill.
	StatusRFKilled Status = 0x12

	// StatusAlreadyPaired indicates the device is already paired.
	StatusAlreadyPaired Status = 0x13

	// StatusPermissionDenied indicates the socket lacks the required privilege.
	StatusPermissionDenied Status = 0x14
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusUnknownCommand:
		return "UNKNOWN_COMMAND"
	case StatusNotConnected:
		return "NOT_CONNECTED"
	case StatusFailed:
		return "FAILED"
	case StatusConnectFailed:
		return "CONNECT_FAILED"
	case StatusAuthenticationFailed:
		return "AUTHENTICATION_FAILED"
	case StatusNotPaired:
		return "NOT_PAIRED"
	case StatusNoResources:
		return "NO_RESOURCES"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusAlreadyConnected:
		return "ALREADY_CONNECTED"
	case StatusBusy:
		return "BUSY"
	case StatusRejected:
		return "REJECTED"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusInvalidParams:
		return "INVALID_PARAMS"
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusNotPowered:
		return "NOT_POWERED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusInvalidIndex:
		return "INVALID_INDEX"
	case StatusRFKilled:
		return "RFKILLED"
	case StatusAlreadyPaired:
		return "ALREADY_PAIRED"
	case StatusPermissionDenied:
		return "PERMISSION_DENIED"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}
