package selector

import (
	"errors"
	"testing"

	"github.com/chmouel/lazyfind/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTools(t *testing.T) {
	tests := []struct {
		name        string
		missing     map[string]bool
		wantMissing []string
	}{
		{
			name: "all present",
		},
		{
			name:        "one missing",
			missing:     map[string]bool{"bat": true},
			wantMissing: []string{"bat"},
		},
		{
			name:        "all missing reported together",
			missing:     map[string]bool{"fzf": true, "rg": true, "bat": true},
			wantMissing: []string{"fzf", "rg", "bat"},
		},
	}

	orig := LookPath
	t.Cleanup(func() { LookPath = orig })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			LookPath = func(file string) (string, error) {
				if tt.missing[file] {
					return "", errors.New("executable file not found in $PATH")
				}
				return "/usr/bin/" + file, nil
			}

			err := CheckTools(config.DefaultConfig())
			if len(tt.wantMissing) == 0 {
				require.NoError(t, err)
				return
			}

			var toolErr *MissingToolError
			require.ErrorAs(t, err, &toolErr)
			assert.Equal(t, tt.wantMissing, toolErr.Tools)
			for _, tool := range tt.wantMissing {
				assert.Contains(t, err.Error(), tool)
			}
		})
	}
}

func TestCheckToolsUsesConfiguredPaths(t *testing.T) {
	orig := LookPath
	t.Cleanup(func() { LookPath = orig })

	var looked []string
	LookPath = func(file string) (string, error) {
		looked = append(looked, file)
		return file, nil
	}

	cfg := config.DefaultConfig()
	cfg.FzfPath = "/opt/fzf"
	cfg.RgPath = "ripgrep"

	require.NoError(t, CheckTools(cfg))
	assert.Equal(t, []string{"/opt/fzf", "ripgrep", "bat"}, looked)
}
