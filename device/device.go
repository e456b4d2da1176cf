// Package device picks the compute device a training run reports and sizes
// its worker pool from.
package device

import "runtime"
import "strings"
import "github.com/klauspost/cpuid/v2"
import "github.com/pkg/errors"

// Device names.
const (
	CPU  = "cpu"
	CUDA = "cuda"
)

// Names lists the selectable devices in prompt order.
var Names = []string{CPU, CUDA}

var (
	// ErrUnknown is returned for a device name not in Names.
	ErrUnknown = errors.New("device: unknown device")

	// ErrNoAccelerator is returned when cuda is selected but the binary was
	// built without the cuda tag or no CUDA device is present.
	ErrNoAccelerator = errors.New("device: no accelerator")
)

// Device describes the selected device.
type Device struct {
	Name     string
	Model    string
	Threads  int
	Memory   int64
	Features []string
}

// String renders the device for logs.
func (d Device) String() string {
	if d.Model == "" {
		return d.Name
	}
	return d.Name + " (" + d.Model + ")"
}

// Select detects the named device.
func Select(name string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CPU:
		return detectCPU(), nil
	case CUDA:
		return detectCUDA()
	}
	return Device{}, errors.Wrapf(ErrUnknown, "%q", name)
}

func detectCPU() Device {
	threads := cpuid.CPU.LogicalCores
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	features := cpuid.CPU.FeatureSet()
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		features = append(features, "avx512")
	}
	return Device{
		Name:     CPU,
		Model:    cpuid.CPU.BrandName,
		Threads:  threads,
		Features: features,
	}
}
