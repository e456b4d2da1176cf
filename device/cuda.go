//go:build cuda

package device

import "fmt"
import "github.com/pkg/errors"
import "gorgonia.org/cu"

// detectCUDA describes the first CUDA device. The arithmetic stays on the
// host, so the worker count is the host's.
func detectCUDA() (Device, error) {
	devices, err := cu.NumDevices()
	if err != nil {
		return Device{}, errors.Wrap(ErrNoAccelerator, err.Error())
	}
	if devices < 1 {
		return Device{}, ErrNoAccelerator
	}
	dev := cu.Device(0)
	name, err := dev.Name()
	if err != nil {
		return Device{}, errors.Wrap(err, "device: cuda name")
	}
	mem, _ := dev.TotalMem()
	major, _ := dev.Attribute(cu.ComputeCapabilityMajor)
	minor, _ := dev.Attribute(cu.ComputeCapabilityMinor)
	return Device{
		Name:    CUDA,
		Model:   name,
		Threads: detectCPU().Threads,
		Memory:  int64(mem),
		Features: []string{
			fmt.Sprintf("cuda %v", cu.Version()),
			fmt.Sprintf("sm_%d%d", major, minor),
		},
	}, nil
}
