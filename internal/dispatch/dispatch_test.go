package dispatch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chmouel/lazyfind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    models.Mode
		line    string
		want    models.Candidate
		wantErr bool
	}{
		{
			name: "files plain path",
			mode: models.ModeFiles,
			line: "internal/app/a.go",
			want: models.Candidate{Mode: models.ModeFiles, Path: "internal/app/a.go"},
		},
		{
			name: "files path with spaces",
			mode: models.ModeFiles,
			line: "docs/read me.md",
			want: models.Candidate{Mode: models.ModeFiles, Path: "docs/read me.md"},
		},
		{
			name:    "files empty",
			mode:    models.ModeFiles,
			line:    "   ",
			wantErr: true,
		},
		{
			name: "grep path line and text",
			mode: models.ModeGrep,
			line: "src/x.py:42:foo bar",
			want: models.Candidate{Mode: models.ModeGrep, Path: "src/x.py", Line: 42},
		},
		{
			name: "grep text containing colons",
			mode: models.ModeGrep,
			line: "a.go:7:x := map[string]int{\"k\": 1}",
			want: models.Candidate{Mode: models.ModeGrep, Path: "a.go", Line: 7},
		},
		{
			name:    "grep missing line number",
			mode:    models.ModeGrep,
			line:    "src/x.py",
			wantErr: true,
		},
		{
			name:    "grep non-numeric line",
			mode:    models.ModeGrep,
			line:    "src/x.py:abc:foo",
			wantErr: true,
		},
		{
			name:    "grep zero line",
			mode:    models.ModeGrep,
			line:    "src/x.py:0:foo",
			wantErr: true,
		},
		{
			name:    "grep empty path",
			mode:    models.ModeGrep,
			line:    ":42:foo",
			wantErr: true,
		},
		{
			name: "commit hash and subject",
			mode: models.ModeCommits,
			line: "abc1234 Fix bug",
			want: models.Candidate{Mode: models.ModeCommits, Hash: "abc1234", Subject: "Fix bug"},
		},
		{
			name: "commit full hash",
			mode: models.ModeCommits,
			line: "0badc0ffee0badc0ffee0badc0ffee0badc0ffee initial",
			want: models.Candidate{Mode: models.ModeCommits, Hash: "0badc0ffee0badc0ffee0badc0ffee0badc0ffee", Subject: "initial"},
		},
		{
			name:    "commit token too short",
			mode:    models.ModeCommits,
			line:    "abc123 too short",
			wantErr: true,
		},
		{
			name:    "commit token not hex",
			mode:    models.ModeCommits,
			line:    "zzzzzzz nope",
			wantErr: true,
		},
		{
			name:    "commit empty line",
			mode:    models.ModeCommits,
			line:    "",
			wantErr: true,
		},
		{
			name: "status modified file",
			mode: models.ModeStatus,
			line: " M internal/config/config.go",
			want: models.Candidate{Mode: models.ModeStatus, Path: "internal/config/config.go"},
		},
		{
			name: "status rename opens destination",
			mode: models.ModeStatus,
			line: "R  old_name.go -> new_name.go",
			want: models.Candidate{Mode: models.ModeStatus, Path: "new_name.go"},
		},
		{
			name: "status untracked",
			mode: models.ModeStatus,
			line: "?? notes.txt",
			want: models.Candidate{Mode: models.ModeStatus, Path: "notes.txt"},
		},
		{
			name:    "status missing path",
			mode:    models.ModeStatus,
			line:    "M",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCandidate(tt.mode, tt.line)
			if tt.wantErr {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, tt.mode, parseErr.Mode)
				assert.Equal(t, tt.line, parseErr.Line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestDispatcher(inEditor bool) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	info := &bytes.Buffer{}
	d := &Dispatcher{
		Out:              out,
		Info:             info,
		InEditorTerminal: inEditor,
		RunEditor:        func(string, ...string) error { return nil },
		Copy:             func(string) error { return nil },
	}
	return d, out, info
}

func TestDispatchFilePrintsLocation(t *testing.T) {
	d, out, _ := newTestDispatcher(false)

	require.NoError(t, d.Dispatch(models.ModeFiles, "b/c.txt"))
	assert.Equal(t, "b/c.txt\n", out.String())
}

func TestDispatchGrepPrintsPathAndLine(t *testing.T) {
	d, out, _ := newTestDispatcher(false)

	require.NoError(t, d.Dispatch(models.ModeGrep, "src/x.py:42:foo"))
	assert.Equal(t, "src/x.py:42\n", out.String())
}

func TestDispatchOpensInEditorTerminal(t *testing.T) {
	d, out, info := newTestDispatcher(true)

	var gotName string
	var gotArgs []string
	d.RunEditor = func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	require.NoError(t, d.Dispatch(models.ModeGrep, "src/x.py:42:foo"))
	assert.Empty(t, out.String())
	assert.Equal(t, "Opening: src/x.py:42\n", info.String())
	assert.Equal(t, "code", gotName)
	assert.Equal(t, []string{"-r", "-g", "src/x.py:42"}, gotArgs)
}

func TestDispatchEditorFailure(t *testing.T) {
	d, _, _ := newTestDispatcher(true)
	d.RunEditor = func(string, ...string) error { return errors.New("exec failed") }

	err := d.Dispatch(models.ModeFiles, "a.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.go")
}

func TestDispatchCommitCopiesHash(t *testing.T) {
	d, out, info := newTestDispatcher(false)

	var copied string
	d.Copy = func(text string) error {
		copied = text
		return nil
	}

	require.NoError(t, d.Dispatch(models.ModeCommits, "abc1234 Fix bug"))
	assert.Equal(t, "abc1234", copied)
	assert.Empty(t, out.String(), "commit hashes never go to stdout")
	assert.Equal(t, "Copied: abc1234\n", info.String())
}

func TestDispatchCommitClipboardFailureIsNotFatal(t *testing.T) {
	d, out, info := newTestDispatcher(false)
	d.Copy = func(string) error { return errors.New("no display") }

	require.NoError(t, d.Dispatch(models.ModeCommits, "abc1234 Fix bug"))
	assert.Empty(t, out.String())
	assert.Contains(t, info.String(), "Hash: abc1234")
}

func TestDispatchParseErrorPropagates(t *testing.T) {
	d, out, _ := newTestDispatcher(false)

	err := d.Dispatch(models.ModeGrep, "garbage")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Empty(t, out.String())
}
