package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentFallsBackToRuntimeVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), Current().GolangVersion)
}

func TestVersionCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Core Version: vunknown")
		assert.Contains(t, out.String(), "Build Time: unknown")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--json"})
		require.NoError(t, cmd.Execute())

		var v Versions
		require.NoError(t, json.Unmarshal(out.Bytes(), &v))
		assert.Equal(t, Current(), v)
	})
}
