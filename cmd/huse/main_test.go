package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFmt_Compact(t *testing.T) {
	code, out, errOut := runCLI(t, `{ "a" : 1, "b" : [ true, null ] }`, "fmt", "-compact")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "{\"a\":1,\"b\":[true,null]}\n", out)
}

func TestFmt_PrettyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":[1]}`), 0o644))

	code, out, errOut := runCLI(t, "", "fmt", "-color", "never", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "{\n  \"a\":[\n    1\n  ]\n}\n", out)
}

func TestFmt_StdDriver(t *testing.T) {
	code, out, errOut := runCLI(t, `[1.5, "x"]`, "fmt", "-compact", "-driver", "std")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "[1.5,\"x\"]\n", out)
}

func TestFmt_Diff(t *testing.T) {
	code, out, _ := runCLI(t, "{ \"a\" : 1 }\n", "fmt", "-compact", "-d")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "-{ \"a\" : 1 }\n")
	assert.Contains(t, out, "+{\"a\":1}\n")

	code, out, _ = runCLI(t, "{\"a\":1}\n", "fmt", "-compact", "-d")
	require.Equal(t, exitOK, code)
	assert.Empty(t, out, "formatted input has no diff")
}

func TestFmt_DataErrors(t *testing.T) {
	code, out, errOut := runCLI(t, `[[1]]`, "fmt", "-max-depth", "1")
	assert.Equal(t, exitData, code)
	assert.Empty(t, out)
	assert.Equal(t, "<stdin>: /0: parse error (max depth exceeded)\n", errOut)

	code, _, errOut = runCLI(t, `{"a":`, "fmt")
	assert.Equal(t, exitData, code)
	assert.Contains(t, errOut, "<stdin>: /: parse error")

	code, _, errOut = runCLI(t, `{"a":1,"a":2}`, "fmt", "-dup", "error", "-lang", "ja")
	assert.Equal(t, exitData, code)
	assert.Contains(t, errOut, "/a: キーが重複しています")
}

func TestFmt_DuplicateWarningIsLogged(t *testing.T) {
	code, out, errOut := runCLI(t, `{"a":1,"a":2}`, "fmt", "-compact", "-dup", "warn", "-lang", "en")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{\"a\":2}\n", out, "the last duplicate wins")
	assert.Contains(t, errOut, `level=WARN`)
	assert.Contains(t, errOut, `msg="duplicate key"`)
	assert.Contains(t, errOut, `path=/a`)
	assert.NotContains(t, errOut, "time=")
}

func TestConvert(t *testing.T) {
	code, out, errOut := runCLI(t, `{"name":"huse","n":1}`, "convert", "-from", "json", "-to", "yaml")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "name: huse\nn: 1\n", out)

	code, out, errOut = runCLI(t, "a: 1\nb: [true, ~]\n", "convert", "-from", "yaml", "-to", "json", "-compact")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "{\"a\":1,\"b\":[true,null]}\n", out)
}

func TestUsageErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"no command":      nil,
		"unknown command": {"lint"},
		"bad flag":        {"fmt", "-nope"},
		"bad dup":         {"fmt", "-dup", "sometimes"},
		"bad color":       {"fmt", "-color", "rainbow"},
		"bad driver":      {"fmt", "-driver", "fast"},
		"bad format":      {"convert", "-from", "toml"},
		"two files":       {"fmt", "a.json", "b.json"},
	} {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runCLI(t, "{}", args...)
			assert.Equal(t, exitUsage, code)
		})
	}

	code, out, _ := runCLI(t, "", "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "huse fmt")
}
