//go:build !cuda

package device

func detectCUDA() (Device, error) {
	return Device{}, ErrNoAccelerator
}
