package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatAuto},
		{input: "auto", want: FormatAuto},
		{input: "terminal", want: FormatTerminal},
		{input: "TEXT", want: FormatText},
		{input: "plain", want: FormatText},
		{input: "json", want: FormatJSON},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "term", FormatTerminal.String())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestMarkup(t *testing.T) {
	assert.Equal(t, "a b", Strip("[bold]a[/bold] [category]b[/category]"))
	assert.Contains(t, Render("[title]Summary[/title]"), "Summary")
	assert.NotContains(t, Render("[title]Summary[/title]"), "[title]")
}

func TestResultLine(t *testing.T) {
	tests := []struct {
		name   string
		result types.OperationResult
		want   string
	}{
		{
			name: "moved",
			result: types.OperationResult{
				Status: types.StatusMoved, Source: "/in/a.jpg",
				Destination: "/out/Images/a.jpg", Category: "Images",
			},
			want: "moved      /in/a.jpg -> /out/Images/a.jpg [Images]",
		},
		{
			name: "simulated",
			result: types.OperationResult{
				Status: types.StatusSimulated, Source: "/in/a.jpg",
				Destination: "/out/Images/a.jpg", Category: "Images", Reason: "dry run",
			},
			want: "would move /in/a.jpg -> /out/Images/a.jpg [Images] (dry run)",
		},
		{
			name:   "unmatched",
			result: types.OperationResult{Status: types.StatusUnmatched, Source: "/in/a.xyz", Reason: "no rule for .xyz"},
			want:   "unmatched  /in/a.xyz (no rule for .xyz)",
		},
		{
			name: "error",
			result: types.OperationResult{
				Status: types.StatusError, Source: "/in/a.txt", Category: "Documents", Reason: "disk full",
			},
			want: "failed     /in/a.txt (disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(ResultLine(tt.result)))

			styled := StyledResultLine(tt.result)
			assert.Contains(t, styled, tt.result.Source)
		})
	}
}

func sampleSummary(dryRun bool) *types.RunSummary {
	s := types.NewRunSummary("0123456789abcdef", dryRun)
	status := types.StatusMoved
	if dryRun {
		status = types.StatusSimulated
	}
	s.Add(types.OperationResult{Status: status, Category: "Images"})
	s.Add(types.OperationResult{Status: status, Category: "Images"})
	s.Add(types.OperationResult{Status: status, Category: "Documents"})
	s.Add(types.OperationResult{Status: types.StatusUnmatched})
	s.Add(types.OperationResult{Status: types.StatusError})
	s.Finished = s.Started.Add(1500 * time.Millisecond)
	return s
}

func TestPlainRenderer(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, FormatText)

		require.NoError(t, r.RenderSummary(sampleSummary(false)))
		out := buf.String()

		assert.Contains(t, out, "Summary\n")
		assert.Contains(t, out, "3 moved, 0 skipped, 0 ignored, 1 unmatched, 1 failed")
		assert.Contains(t, out, "  Documents: 1\n  Images: 2")
		assert.Contains(t, out, "run 01234567 in 1.5s")
		assert.NotContains(t, out, "[")
	})

	t.Run("dry_run_summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatText).RenderSummary(sampleSummary(true)))

		assert.Contains(t, buf.String(), "Summary (dry run, nothing was moved)")
		assert.Contains(t, buf.String(), "3 would move")
	})

	t.Run("classification", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, FormatText)

		require.NoError(t, r.RenderClassification("a.jpg", rules.Classification{
			Verdict: rules.Matched, Category: "Images", TargetDir: "/out/Images",
		}))
		require.NoError(t, r.RenderClassification("a.tmp", rules.Classification{
			Verdict: rules.Ignored, Reason: "ignored extension .tmp",
		}))
		require.NoError(t, r.RenderClassification("a.xyz", rules.Classification{
			Verdict: rules.Unmatched, Reason: "no rule for .xyz",
		}))

		assert.Equal(t,
			"a.jpg -> Images /out/Images\n"+
				"a.tmp ignored: ignored extension .tmp\n"+
				"a.xyz unmatched: no rule for .xyz\n",
			buf.String())
	})

	t.Run("config", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatText).RenderConfig(config.Default()))

		out := buf.String()
		assert.Contains(t, out, "Watch directories")
		assert.Contains(t, out, "Images")
		assert.Contains(t, out, ".jpg")
		assert.Contains(t, out, "duplicate_handling")
		assert.Contains(t, out, "rename")
		assert.Contains(t, out, "500ms")
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatText).RenderError(fmt.Errorf("boom")))
		assert.Equal(t, "Error: boom\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatTerminal)

	require.NoError(t, r.RenderResult(types.OperationResult{
		Status: types.StatusMoved, Source: "/in/a.jpg", Destination: "/out/a.jpg", Category: "Images",
	}))
	require.NoError(t, r.RenderSummary(sampleSummary(false)))
	require.NoError(t, r.RenderConfig(config.Default()))
	require.NoError(t, r.RenderError(errors.New(errors.ErrLockHeld, "another watcher is running")))

	out := buf.String()
	assert.Contains(t, out, "/in/a.jpg")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Images")
	assert.Contains(t, out, "another watcher is running")
}

func TestJSONRenderer(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, FormatJSON)

		require.NoError(t, r.RenderResult(types.OperationResult{
			Status: types.StatusError,
			Source: "/in/a.txt",
			Reason: "disk full",
			Err:    errors.New(errors.ErrDiskFull, "no space"),
		}))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "error", got["status"])
		assert.Equal(t, "/in/a.txt", got["source"])
		assert.Equal(t, "[DISK_FULL] no space", got["error"])
	})

	t.Run("summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatJSON).RenderSummary(sampleSummary(false)))

		var got types.RunSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 3, got.Moved)
		assert.Equal(t, 2, got.ByCategory["Images"])
	})

	t.Run("classification", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatJSON).RenderClassification("a.jpg", rules.Classification{
			Verdict: rules.Matched, Extension: ".jpg", Category: "Images", TargetDir: "/out",
		}))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "matched", got["verdict"])
		assert.Equal(t, "Images", got["category"])
	})

	t.Run("config", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatJSON).RenderConfig(config.Default()))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Contains(t, got, "rules")
		assert.Contains(t, got, "settings")
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		err := errors.New(errors.ErrWatchDirMissing, "missing").WithDetail("directory", "/in")
		require.NoError(t, NewRenderer(&buf, FormatJSON).RenderError(err))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "WATCH_DIR_MISSING", got["code"])
		assert.Equal(t, map[string]interface{}{"directory": "/in"}, got["details"])
	})
}

func TestAutoFormatForBuffers(t *testing.T) {
	var buf bytes.Buffer
	_, ok := NewRenderer(&buf, FormatAuto).(*PlainRenderer)
	assert.True(t, ok)
}
