package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "v0.3.0", Commit: "abc123", BuildDate: "2026-10-01", GoVersion: "go1.25.3"}
	assert.Equal(t, "v0.3.0 (commit abc123, built 2026-10-01, go1.25.3)", info.String())
}
