package gpucheck

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Host abstracts system information for testability.
type Host interface {
	OS() string
	Arch() string
	ReadFile(path string) ([]byte, error)
	CPU() string
}

// RealHost returns actual system information.
type RealHost struct{}

func (r *RealHost) OS() string   { return runtime.GOOS }
func (r *RealHost) Arch() string { return runtime.GOARCH }

func (r *RealHost) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // fixed driver path
}

// CPU describes the processor, including the SIMD extensions CPU
// inference runtimes care about.
func (r *RealHost) CPU() string {
	name := strings.TrimSpace(cpuid.CPU.BrandName)
	if name == "" {
		name = runtime.GOARCH
	}
	cores := cpuid.CPU.PhysicalCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	desc := fmt.Sprintf("%s, %d cores", name, cores)
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		desc += ", AVX512"
	case cpuid.CPU.Supports(cpuid.AVX2):
		desc += ", AVX2"
	case cpuid.CPU.Supports(cpuid.ASIMD):
		desc += ", NEON"
	}
	return desc
}
