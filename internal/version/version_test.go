package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIVersion(t *testing.T) {
	got := CLIVersion()

	assert.True(t, strings.HasPrefix(got, colorCyanBold))
	assert.True(t, strings.HasSuffix(got, colorReset))
	assert.Contains(t, got, "CLI "+Version)
	assert.NotContains(t, got, "%s")
}

func TestBenchVersion(t *testing.T) {
	assert.Contains(t, BenchVersion(), "Bench "+Version)
}
