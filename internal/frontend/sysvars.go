package frontend

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

// ErrUnknownHostCPU and ErrUnknownHostOS mark a fatal detection failure: the
// running platform's runtime.GOARCH/runtime.GOOS fell outside every case the
// derivation table below enumerates. Wrap with fmt.Errorf("...: %w",
// ErrUnknownHostCPU) to retain errors.Is compatibility while naming the
// offending value.
var (
	ErrUnknownHostCPU = errors.New("gnargs: unknown host_cpu")
	ErrUnknownHostOS  = errors.New("gnargs: unknown host_os")
)

// sysVarOriginNode backs the synthetic origin attributed to every seeded system
// variable. There is no DSL site to blame for host_os/host_cpu -- they are
// detected, not declared -- so all six share one node identifying the
// seeding step itself.
var sysVarOriginNode = &gnvalue.Node{Name: "<system variable seeding>"}

// knownHostOS and knownHostCPU enumerate the closed value sets gnargs
// recognizes. Any detected value outside these sets is a fatal configuration
// error.
var knownHostOS = map[string]struct{}{
	"win": {}, "mac": {}, "linux": {}, "freebsd": {}, "aix": {}, "openbsd": {},
	"haiku": {}, "solaris": {}, "netbsd": {}, "zos": {}, "serenity": {},
}

var knownHostCPU = map[string]struct{}{
	"x86": {}, "x64": {}, "arm": {}, "arm64": {}, "mipsel": {}, "mips64el": {},
	"s390x": {}, "ppc64": {}, "riscv32": {}, "riscv64": {}, "e2k": {}, "loong64": {},
}

// DeriveHostCPU implements the literal host-CPU derivation table, given the
// raw architecture string a lower-level uname(2)-style probe would report.
func DeriveHostCPU(raw string) (string, error) {
	switch {
	case raw == "x86" || raw == "BePC":
		return "x86", nil
	case raw == "x86_64":
		return "x64", nil
	case raw == "aarch64" || raw == "arm64":
		return "arm64", nil
	case strings.HasPrefix(raw, "arm"):
		return "arm", nil
	case raw == "mips":
		return "mipsel", nil
	case raw == "mips64":
		return "mips64el", nil
	case raw == "ppc64" || raw == "ppc64le":
		return "ppc64", nil
	case raw == "loongarch64":
		return "loong64", nil
	}
	if _, ok := knownHostCPU[raw]; ok {
		return raw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHostCPU, raw)
}

// rawArchFromGOARCH maps Go's runtime.GOARCH to the uname-style architecture
// string the derivation table above is written against, so the same
// DeriveHostCPU logic serves both a literal probe and Go's own runtime.
func rawArchFromGOARCH(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	case "mips", "mipsle":
		return "mips"
	case "mips64", "mips64le":
		return "mips64"
	case "ppc64le":
		return "ppc64le"
	case "loong64":
		return "loongarch64"
	default:
		return goarch
	}
}

// DetectHostCPU reports the host architecture using runtime.GOARCH, the same
// source internal/buildinfo.Arch reads from.
func DetectHostCPU() (string, error) {
	return DeriveHostCPU(rawArchFromGOARCH(runtime.GOARCH))
}

// DetectHostOS reports the host operating system using runtime.GOOS, the
// same source internal/buildinfo.OS reads from.
func DetectHostOS() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return "win", nil
	case "darwin":
		return "mac", nil
	case "linux":
		return "linux", nil
	case "freebsd":
		return "freebsd", nil
	case "aix":
		return "aix", nil
	case "openbsd":
		return "openbsd", nil
	case "solaris":
		return "solaris", nil
	case "netbsd":
		return "netbsd", nil
	case "zos":
		return "zos", nil
	}
	if _, ok := knownHostOS[runtime.GOOS]; ok {
		return runtime.GOOS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHostOS, runtime.GOOS)
}

// SeedSystemVariables builds the map of six system variables required in
// every root scope: host_os and host_cpu detected from the
// running platform, and current_os/target_os/current_cpu/target_cpu seeded
// empty, expected to be set later by toolchain or project defaults.
func SeedSystemVariables() (map[string]gnvalue.Value, error) {
	origin := gnvalue.NewOrigin(sysVarOriginNode)

	hostOS, err := DetectHostOS()
	if err != nil {
		return nil, err
	}
	hostCPU, err := DetectHostCPU()
	if err != nil {
		return nil, err
	}

	return map[string]gnvalue.Value{
		"host_os":    gnvalue.String(hostOS, origin),
		"host_cpu":   gnvalue.String(hostCPU, origin),
		"current_os": gnvalue.String("", origin),
		"target_os":  gnvalue.String("", origin),
		"current_cpu": gnvalue.String("", origin),
		"target_cpu":  gnvalue.String("", origin),
	}, nil
}
