package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	assert.Equal(t, "dev-edge-unknown", Print())
}

func TestLong(t *testing.T) {
	assert.Contains(t, Long(), Print())
	assert.Contains(t, Long(), runtime.GOOS)
}
