package menu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meysamhadeli/scriptbox/script_index"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "/work"

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

type fixture struct {
	fs  afero.Fs
	out *bytes.Buffer
}

func newFixture(t *testing.T, dirs ...string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(base, 0o755))
	for _, dir := range dirs {
		require.NoError(t, fs.MkdirAll(filepath.Join(base, dir), 0o755))
	}
	return &fixture{fs: fs, out: &bytes.Buffer{}}
}

func (f *fixture) write(t *testing.T, rel string, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, filepath.Join(base, rel), []byte(content), 0o644))
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	content, err := afero.ReadFile(f.fs, filepath.Join(base, rel))
	require.NoError(t, err)
	return string(content)
}

func (f *fixture) exists(rel string) bool {
	ok, _ := afero.Exists(f.fs, filepath.Join(base, rel))
	return ok
}

func (f *fixture) run(t *testing.T, input string, opts Options) string {
	t.Helper()
	index := script_index.NewScriptIndex(f.fs, script_index.Config{BasePath: base, Prefix: "scripts", Suffix: ".lua"}, nil)
	require.NoError(t, NewMenu(index, f.fs, strings.NewReader(input), f.out, opts, nil).Run())
	return f.out.String()
}

func TestRun_QuitAndEndOfInput(t *testing.T) {
	for _, input := range []string{"q\n", "Q\n", ""} {
		f := newFixture(t)
		output := f.run(t, input, Options{})
		assert.Contains(t, output, "Main Menu:")
		assert.Contains(t, output, "[4] Delete Script")
		assert.Equal(t, 1, strings.Count(output, "Main Menu:"), "input %q", input)
	}
}

func TestRun_InvalidChoiceStaysInMainMenu(t *testing.T) {
	f := newFixture(t)

	output := f.run(t, "7\nhello\nq\n", Options{})

	assert.Contains(t, output, `invalid choice "7"`)
	assert.Contains(t, output, `invalid choice "hello"`)
	assert.Equal(t, 3, strings.Count(output, "Main Menu:"))
	assert.Contains(t, output, "Goodbye.")
}

func TestRun_ClearScreen(t *testing.T) {
	f := newFixture(t)

	output := f.run(t, "q\n", Options{ClearScreen: true})

	assert.True(t, strings.HasPrefix(output, "\033[2J\033[H"))
}

func TestCreate_RoundTrip(t *testing.T) {
	f := newFixture(t, "scripts1")

	output := f.run(t, "1\n1\ntest\nprint(1)\nprint(2)\nEND\nq\n", Options{})

	assert.Equal(t, "print(1)\nprint(2)", f.read(t, "scripts1/test.lua"))
	assert.Contains(t, output, "Saved scripts1/test.lua (17 bytes).")
	assert.Contains(t, output, "Type END on its own line")
}

func TestCreate_KeepsSuffixAndWhitespace(t *testing.T) {
	f := newFixture(t, "scripts1")

	f.run(t, "1\n1\nmain.lua\n  indented\n\nEND \nEND\nq\n", Options{})

	assert.Equal(t, "  indented\n\nEND ", f.read(t, "scripts1/main.lua"))
}

func TestCreate_NewDirectoryIsOnePastMax(t *testing.T) {
	f := newFixture(t, "scripts1", "scripts3")

	f.run(t, "1\nn\nhello\nprint('hi')\nEND\nq\n", Options{})

	assert.Equal(t, "print('hi')", f.read(t, "scripts4/hello.lua"))
	assert.False(t, f.exists("scripts2"))
}

func TestCreate_UnknownIDIsCreated(t *testing.T) {
	f := newFixture(t)

	f.run(t, "1\n9\nempty\nEND\nq\n", Options{})

	assert.Equal(t, "", f.read(t, "scripts9/empty.lua"))
}

func TestCreate_UsesExistingPaddedDirectory(t *testing.T) {
	f := newFixture(t, "scripts01")

	output := f.run(t, "1\n1\nx\nbody\nEND\n3\n1\n1\nq\n", Options{})

	assert.Equal(t, "body", f.read(t, "scripts01/x.lua"))
	assert.False(t, f.exists("scripts1"))
	assert.Contains(t, output, "Saved scripts01/x.lua (4 bytes).")
	assert.Contains(t, output, "1 | body")
}

func TestCreate_NewDirectoryWhenIDsExhausted(t *testing.T) {
	f := newFixture(t, "scripts9223372036854775807")

	output := f.run(t, "1\nn\nq\n", Options{})

	assert.Contains(t, output, "already uses the largest directory id")
	assert.Contains(t, output, "Goodbye.")
	entries, err := afero.ReadDir(f.fs, base)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreate_CustomSentinel(t *testing.T) {
	f := newFixture(t, "scripts1")

	f.run(t, "1\n1\nx\nEND\nSTOP\nq\n", Options{Sentinel: "STOP"})

	assert.Equal(t, "END", f.read(t, "scripts1/x.lua"))
}

func TestCreate_EndOfInputFinishesBody(t *testing.T) {
	f := newFixture(t, "scripts1")

	output := f.run(t, "1\n1\npartial\nline one\nline two", Options{})

	assert.Equal(t, "line one\nline two", f.read(t, "scripts1/partial.lua"))
	assert.Contains(t, output, "Saved scripts1/partial.lua")
}

func TestCreate_InvalidInputAborts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"non-numeric id", "1\nabc\nq\n", `"abc" is not a valid directory id`},
		{"zero id", "1\n0\nq\n", `"0" is not a valid directory id`},
		{"negative id", "1\n-3\nq\n", `"-3" is not a valid directory id`},
		{"empty name", "1\n1\n\nq\n", "script name must not be empty"},
		{"path in name", "1\n1\n../evil\nq\n", "must not contain path separators"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "scripts1")

			output := f.run(t, tt.input, Options{})

			assert.Contains(t, output, tt.want)
			assert.Contains(t, output, "Goodbye.")
			entries, err := afero.ReadDir(f.fs, filepath.Join(base, "scripts1"))
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestCreate_DirectoryNameTakenByFile(t *testing.T) {
	f := newFixture(t)
	f.write(t, "scripts2", "not a directory")

	output := f.run(t, "1\n2\nq\n", Options{})

	assert.Contains(t, output, "not a directory")
	assert.Equal(t, "not a directory", f.read(t, "scripts2"))
}

func TestCreate_OverwritesWithNotice(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "old")

	output := f.run(t, "1\n1\na\nnew\nEND\nq\n", Options{})

	assert.Contains(t, output, "scripts1/a.lua already exists and will be overwritten.")
	assert.Equal(t, "new", f.read(t, "scripts1/a.lua"))
}

func TestCreate_ConfirmOverwrite(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture(t, "scripts1")
		f.write(t, "scripts1/a.lua", "old")

		output := f.run(t, "1\n1\na\nn\nq\n", Options{ConfirmOverwrite: true})

		assert.Contains(t, output, "Creation cancelled.")
		assert.Equal(t, "old", f.read(t, "scripts1/a.lua"))
	})

	t.Run("accepted", func(t *testing.T) {
		f := newFixture(t, "scripts1")
		f.write(t, "scripts1/a.lua", "old")

		f.run(t, "1\n1\na\ny\nnew\nEND\nq\n", Options{ConfirmOverwrite: true})

		assert.Equal(t, "new", f.read(t, "scripts1/a.lua"))
	})
}

func TestCreate_UnchangedContent(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "print(1)")

	output := f.run(t, "1\n1\na\nprint(1)\nEND\nq\n", Options{})

	assert.Contains(t, output, "scripts1/a.lua is unchanged.")
	assert.NotContains(t, output, "Saved")
}

func TestList_ShowsEmptyDirectories(t *testing.T) {
	f := newFixture(t, "scripts1", "scripts2", "scripts10", "other")
	f.write(t, "scripts1/b.lua", "x")
	f.write(t, "scripts1/a.lua", "--- Greets\nprint(1)\n")
	f.write(t, "scripts10/z.lua", "")

	output := f.run(t, "2\nq\n", Options{})

	first := strings.Index(output, "scripts1/")
	second := strings.Index(output, "scripts2/")
	tenth := strings.Index(output, "scripts10/")
	require.True(t, first >= 0 && second > first && tenth > second, output)

	assert.Contains(t, output[second:tenth], "(empty)")
	assert.NotContains(t, output[first:second], "(empty)")
	assert.Less(t, strings.Index(output, "a.lua"), strings.Index(output, "b.lua"))
	assert.Contains(t, output, "20 bytes")
	assert.Contains(t, output, "Greets")
	assert.Contains(t, output[tenth:], "z.lua")
	assert.NotContains(t, output, "other/")
}

func TestList_NoDirectories(t *testing.T) {
	f := newFixture(t)

	output := f.run(t, "2\nq\n", Options{})

	assert.Contains(t, output, "No script directories found in /work.")
}

func TestView_NumberedLines(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "x")
	f.write(t, "scripts1/b.lua", "first\n\nthird")

	output := f.run(t, "3\n1\n2\nq\n", Options{})

	assert.Contains(t, output, "── scripts1/b.lua ──")
	assert.Contains(t, output, "1 | first\n2 | \n3 | third\n")
	assert.NotContains(t, output, "4 |")
}

func TestView_EmptyFile(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "")

	output := f.run(t, "3\n1\n1\nq\n", Options{})

	assert.Contains(t, output, "(empty file)")
}

func TestView_SelectionErrorsAbort(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"non-numeric directory", "3\nx\nq\n", `"x" is not a valid directory id`},
		{"unknown directory", "3\n5\nq\n", "directory scripts5 does not exist"},
		{"empty directory", "3\n2\nq\n", "scripts2 has no scripts"},
		{"position out of range", "3\n1\n2\nq\n", `"2" is not a script number between 1 and 1`},
		{"position zero", "3\n1\n0\nq\n", `"0" is not a script number between 1 and 1`},
		{"non-numeric position", "3\n1\nfirst\nq\n", `"first" is not a script number`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "scripts1", "scripts2")
			f.write(t, "scripts1/a.lua", "print(1)")

			output := f.run(t, tt.input, Options{})

			assert.Contains(t, output, tt.want)
			assert.NotContains(t, output, "── scripts1/")
			assert.Contains(t, output, "Goodbye.")
		})
	}
}

func TestView_NoDirectories(t *testing.T) {
	f := newFixture(t)

	output := f.run(t, "3\nq\n", Options{})

	assert.Contains(t, output, "no script directories found in /work")
}

func TestView_Lint(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/bad.lua", "local = = 1")
	f.write(t, "scripts1/good.lua", "local x = 1")

	output := f.run(t, "3\n1\n1\n3\n1\n2\nq\n", Options{Lint: true})

	assert.Contains(t, output, "Lua syntax error")
	assert.Contains(t, output, "Lua syntax OK.")
}

func TestDelete_RequiresExactConfirmation(t *testing.T) {
	tests := []struct {
		answer  string
		deleted bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"yes", false},
		{"", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run("answer "+tt.answer, func(t *testing.T) {
			f := newFixture(t, "scripts1")
			f.write(t, "scripts1/a.lua", "keep")
			f.write(t, "scripts1/b.lua", "target")

			output := f.run(t, "4\n1\n2\n"+tt.answer+"\nq\n", Options{})

			assert.Equal(t, !tt.deleted, f.exists("scripts1/b.lua"))
			assert.Equal(t, "keep", f.read(t, "scripts1/a.lua"))
			if tt.deleted {
				assert.Contains(t, output, "Deleted scripts1/b.lua.")
			} else {
				assert.Contains(t, output, "Deletion cancelled.")
				assert.Equal(t, "target", f.read(t, "scripts1/b.lua"))
			}
		})
	}
}

func TestDelete_EndOfInputCancels(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "keep")

	f.run(t, "4\n1\n1\n", Options{})

	assert.True(t, f.exists("scripts1/a.lua"))
}

func TestDelete_KeepsDirectory(t *testing.T) {
	f := newFixture(t, "scripts1")
	f.write(t, "scripts1/a.lua", "x")

	output := f.run(t, "4\n1\n1\ny\n2\nq\n", Options{})

	assert.True(t, f.exists("scripts1"))
	assert.Contains(t, output, "(empty)")
}

func TestActions_EndOfInputMidActionEndsLoop(t *testing.T) {
	f := newFixture(t, "scripts1")

	output := f.run(t, "1\n", Options{})

	assert.Contains(t, output, "Create cancelled: input ended.")
}
