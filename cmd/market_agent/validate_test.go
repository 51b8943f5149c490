package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantError   bool
		errorString string
	}{
		{
			name:        "No flags at all",
			args:        []string{"validate"},
			wantError:   true,
			errorString: "either --run or the --schema/--json pair is required",
		},
		{
			name:        "Schema without json",
			args:        []string{"validate", "--schema", "x.schema.json"},
			wantError:   true,
			errorString: "--schema and --json must be used together",
		},
		{
			name:        "Nonexistent run directory",
			args:        []string{"validate", "--run", "does_not_exist"},
			wantError:   true,
			errorString: "failed to open run directory",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorString != "" {
					assert.Contains(t, string(output), tt.errorString)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
