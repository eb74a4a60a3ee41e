package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveHostCPU_Table(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"x86":          "x86",
		"BePC":         "x86",
		"x86_64":       "x64",
		"aarch64":      "arm64",
		"arm64":        "arm64",
		"armv7l":       "arm",
		"mips":         "mipsel",
		"mips64":       "mips64el",
		"ppc64":        "ppc64",
		"ppc64le":      "ppc64",
		"loongarch64":  "loong64",
		"riscv64":      "riscv64",
		"s390x":        "s390x",
	}
	for raw, want := range cases {
		got, err := DeriveHostCPU(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestDeriveHostCPU_Unknown(t *testing.T) {
	t.Parallel()
	_, err := DeriveHostCPU("vax")
	require.Error(t, err)
}

func TestDetectHostCPU_NeverErrorsOnSupportedArches(t *testing.T) {
	t.Parallel()
	// The test binary itself runs on a supported GOARCH, so detection of the
	// live platform must always succeed.
	_, err := DetectHostCPU()
	assert.NoError(t, err)
}

func TestDetectHostOS_NeverErrorsOnSupportedPlatforms(t *testing.T) {
	t.Parallel()
	_, err := DetectHostOS()
	assert.NoError(t, err)
}

func TestSeedSystemVariables_SixKeysPresent(t *testing.T) {
	t.Parallel()
	vars, err := SeedSystemVariables()
	require.NoError(t, err)

	for _, name := range []string{"host_os", "host_cpu", "current_os", "target_os", "current_cpu", "target_cpu"} {
		v, ok := vars[name]
		require.True(t, ok, name)
		_, isStr := v.AsString()
		assert.True(t, isStr, name)
	}

	hostOS, _ := vars["host_os"].AsString()
	assert.NotEmpty(t, hostOS)

	targetOS, _ := vars["target_os"].AsString()
	assert.Empty(t, targetOS, "target_os must be seeded empty, awaiting toolchain override")
}
