package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	assert.NotEmpty(t, BuildInfo())
	assert.Equal(t, VERSION_INFO, BuildInfo())
}
