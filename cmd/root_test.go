package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/docfile"
)

const testScript = `
document:
  paragraphs:
    - spans:
        - text: Hello
  selection:
    anchor: {paragraph: 0, span: 0, offset: 5}
    focus: {paragraph: 0, span: 0, offset: 5}
steps:
  - input: insertText
    data: ", World"
  - select: {anchor: {paragraph: 0, span: 0, offset: 0}, focus: {paragraph: 0, span: 0, offset: 5}}
  - style: {font-weight: "700"}
`

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func testConfig() config.Config {
	c := config.Defaults()
	c.Editor.ChangeDebounce = 0
	c.Editor.Validate = true
	c.UI.MarkdownStyle = "notty"
	return c
}

func runTestReplay(t *testing.T, opts replayOptions) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := replay(context.Background(), &out, writeScript(t, testScript), testConfig(), opts)
	return out.String(), err
}

func TestReplay_Text(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "text"})
	require.NoError(t, err)
	require.Equal(t, "Hello, World\n", out)
}

func TestReplay_Diff(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "text", Diff: true})
	require.NoError(t, err)
	require.Equal(t, "Hello{+, World+}\n", out)
}

func TestReplay_Markdown(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "markdown"})
	require.NoError(t, err)
	require.Equal(t, "**Hello**, World\n", out)
}

func TestReplay_RenderedMarkdown(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "markdown", Render: true, Width: 60})
	require.NoError(t, err)
	require.Contains(t, out, "Hello")
	require.Contains(t, out, "World")
}

func TestReplay_Tree(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "tree"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "root #"))
	require.Contains(t, out, `"Hello"`)
	require.Contains(t, out, `", World"`)
}

func TestReplay_YAMLRoundTrips(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "yaml"})
	require.NoError(t, err)

	f, err := docfile.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, f.Paragraphs, 1)
	require.Len(t, f.Paragraphs[0].Spans, 2)
	require.Equal(t, "700", f.Paragraphs[0].Spans[0].Style["font-weight"])
	require.NotNil(t, f.Selection)
}

func TestReplay_Steps(t *testing.T) {
	out, err := runTestReplay(t, replayOptions{Format: "text", Steps: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "input")
	require.Contains(t, lines[0], "executed")
	require.Contains(t, lines[1], "select")
	require.Contains(t, lines[1], "skipped")
	require.Equal(t, "Hello, World", lines[3])
}

func TestReplay_FailedExpectation(t *testing.T) {
	path := writeScript(t, `
steps:
  - input: insertText
    data: abc
    expect: xyz
`)
	var out bytes.Buffer
	err := replay(context.Background(), &out, path, testConfig(), replayOptions{Format: "text"})
	require.ErrorIs(t, err, docfile.ErrExpectation)
	require.Empty(t, out.String())
}

func TestReplay_MissingScript(t *testing.T) {
	var out bytes.Buffer
	err := replay(context.Background(), &out, filepath.Join(t.TempDir(), "missing.yaml"), testConfig(), replayOptions{Format: "text"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReplayOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    replayOptions
		wantErr string
	}{
		{name: "text", opts: replayOptions{Format: "text"}},
		{name: "text diff", opts: replayOptions{Format: "text", Diff: true}},
		{name: "rendered markdown", opts: replayOptions{Format: "markdown", Render: true}},
		{name: "unknown format", opts: replayOptions{Format: "html"}, wantErr: "unknown output format"},
		{name: "diff on tree", opts: replayOptions{Format: "tree", Diff: true}, wantErr: "--diff"},
		{name: "render on yaml", opts: replayOptions{Format: "yaml", Render: true}, wantErr: "--render"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestDefaultConfigTemplate_Loads verifies the template written for new
// users parses and validates the way initConfig reads it.
func TestDefaultConfigTemplate_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path, false))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	loaded := config.Defaults()
	require.NoError(t, v.Unmarshal(&loaded))
	require.NoError(t, loaded.Validate())
}

func TestConfigFilePath_DefaultsToLocal(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.Equal(t, localConfigPath, configFilePath())
}

func TestInitConfig_WritesOnce(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "spanedit", "config.yaml")
	viper.SetConfigFile(path)

	var out bytes.Buffer
	initConfigCmd.SetOut(&out)
	t.Cleanup(func() {
		initConfigCmd.SetOut(nil)
		_ = initConfigCmd.Flags().Set("force", "false")
	})

	require.NoError(t, initConfigCmd.RunE(initConfigCmd, nil))
	require.Equal(t, "wrote "+path+"\n", out.String())

	err := initConfigCmd.RunE(initConfigCmd, nil)
	require.ErrorIs(t, err, config.ErrConfigExists)

	require.NoError(t, initConfigCmd.Flags().Set("force", "true"))
	require.NoError(t, initConfigCmd.RunE(initConfigCmd, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}
