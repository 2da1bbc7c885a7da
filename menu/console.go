package menu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/meysamhadeli/scriptbox/constants/lipgloss"
	"github.com/meysamhadeli/scriptbox/script_index"
	"github.com/meysamhadeli/scriptbox/script_index/contracts"
	"github.com/meysamhadeli/scriptbox/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

// Options tune how the menu prompts and renders.
type Options struct {
	Sentinel         string
	Theme            string
	Highlight        bool
	ClearScreen      bool
	ConfirmOverwrite bool
	Lint             bool
}

// console holds what both the full and the degraded menu need: the index, raw file
// access, the line reader and the output stream.
type console struct {
	index contracts.IScriptIndex
	fs    afero.Fs
	input *utils.LineReader
	out   io.Writer
	opts  Options
	log   *logrus.Entry
}

func newConsole(index contracts.IScriptIndex, fs afero.Fs, in io.Reader, out io.Writer, opts Options, log *logrus.Entry) console {
	if opts.Sentinel == "" {
		opts.Sentinel = "END"
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	return console{
		index: index,
		fs:    fs,
		input: utils.NewLineReader(in, out),
		out:   out,
		opts:  opts,
		log:   log,
	}
}

func (c *console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *console) success(format string, args ...interface{}) {
	fmt.Fprintln(c.out, lipgloss.Green.Render("✔ "+fmt.Sprintf(format, args...)))
}

func (c *console) warn(format string, args ...interface{}) {
	fmt.Fprintln(c.out, lipgloss.Yellow.Render(fmt.Sprintf(format, args...)))
}

func (c *console) failure(err error) {
	fmt.Fprintln(c.out, lipgloss.Red.Render("✖ "+err.Error()))
}

func (c *console) clearScreen() {
	if c.opts.ClearScreen {
		fmt.Fprint(c.out, "\033[2J\033[H")
	}
}

// runAction executes one handler and reports its error; the loop always continues.
func (c *console) runAction(name string, action func() error) {
	err := action()
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		c.warn("%s cancelled: input ended.", name)
	default:
		c.log.WithError(err).WithField("action", name).Debug("action failed")
		c.failure(err)
	}
}

// promptDirectoryID reads a positive directory id.
func (c *console) promptDirectoryID(label string) (int, error) {
	answer, err := c.input.InputPrompt(label)
	if err != nil {
		return 0, err
	}
	return parseDirectoryID(answer)
}

func parseDirectoryID(answer string) (int, error) {
	if answer == "" || strings.TrimLeft(answer, "0123456789") != "" {
		return 0, script_index.NewError(script_index.ErrCodeInvalidInput, "%q is not a valid directory id", answer)
	}
	id, err := strconv.Atoi(answer)
	if err != nil || id < 1 {
		return 0, script_index.NewError(script_index.ErrCodeInvalidInput, "%q is not a valid directory id", answer)
	}
	return id, nil
}

// normalizeScriptName trims name, rejects anything that would escape the directory
// and appends the script suffix when it is missing.
func normalizeScriptName(name string, suffix string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", script_index.NewError(script_index.ErrCodeInvalidInput, "script name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", script_index.NewError(script_index.ErrCodeInvalidInput, "script name %q must not contain path separators or '..'", name)
	}
	if !strings.HasSuffix(name, suffix) {
		name += suffix
	}
	if name == suffix {
		return "", script_index.NewError(script_index.ErrCodeInvalidInput, "script name must not be empty")
	}
	return name, nil
}

// writeScript asks for a body and writes it to dirName/fileName. An existing file is
// overwritten after a notice, or after a confirmation when ConfirmOverwrite is set.
func (c *console) writeScript(dirName string, fileName string) error {
	path := c.index.ScriptPath(dirName, fileName)
	display := dirName + "/" + fileName

	_, statErr := c.fs.Stat(path)
	exists := statErr == nil
	if exists {
		c.warn("%s already exists and will be overwritten.", display)
		if c.opts.ConfirmOverwrite {
			ok, err := c.input.ConfirmPrompt("Overwrite " + display + "?")
			if err != nil {
				return err
			}
			if !ok {
				c.println("Creation cancelled.")
				return nil
			}
		}
	}

	c.println(fmt.Sprintf("Enter script content. Type %s on its own line to finish.", c.opts.Sentinel))
	body := c.input.ReadBlock(c.opts.Sentinel)

	if exists {
		if current, err := afero.ReadFile(c.fs, path); err == nil && sameContent(current, body) {
			c.success("%s is unchanged.", display)
			return nil
		}
	}

	if err := afero.WriteFile(c.fs, path, []byte(body), 0o644); err != nil {
		return script_index.Wrap(err, script_index.ErrCodeFilesystem, "cannot write %s", display)
	}
	c.log.WithField("path", path).WithField("bytes", len(body)).Debug("script written")
	c.success("Saved %s (%d bytes).", display, len(body))
	return nil
}

func sameContent(current []byte, body string) bool {
	return len(current) == len(body) && xxh3.Hash(current) == xxh3.HashString(body)
}

// showScript prints a script with line numbers.
func (c *console) showScript(dirName string, fileName string) error {
	display := dirName + "/" + fileName
	content, err := afero.ReadFile(c.fs, c.index.ScriptPath(dirName, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return script_index.Wrap(err, script_index.ErrCodeNotFound, "cannot read %s", display)
		}
		return script_index.Wrap(err, script_index.ErrCodeFilesystem, "cannot read %s", display)
	}

	c.println(lipgloss.Info.Render("── " + display + " ──"))
	if len(content) == 0 {
		c.println(lipgloss.Gray.Render("(empty file)"))
		return nil
	}

	language := utils.LanguageForSuffix(c.index.Suffix())
	if err := utils.RenderNumberedLines(c.out, string(content), language, c.opts.Theme, c.opts.Highlight); err != nil {
		return fmt.Errorf("cannot render %s: %w", display, err)
	}

	if c.opts.Lint {
		if err := utils.CheckLuaSyntax(fileName, string(content)); err != nil {
			c.warn("Lua syntax error: %v", err)
		} else {
			c.success("Lua syntax OK.")
		}
	}
	return nil
}

// removeScript deletes a script after an explicit y/Y. Any other answer keeps it.
func (c *console) removeScript(dirName string, fileName string) error {
	display := dirName + "/" + fileName

	ok, err := c.input.ConfirmPrompt("Delete " + display + "?")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Deletion cancelled.")
		return nil
	}

	if err := c.fs.Remove(c.index.ScriptPath(dirName, fileName)); err != nil {
		if os.IsNotExist(err) {
			return script_index.Wrap(err, script_index.ErrCodeNotFound, "cannot delete %s", display)
		}
		return script_index.Wrap(err, script_index.ErrCodeFilesystem, "cannot delete %s", display)
	}
	c.log.WithField("script", display).Debug("script deleted")
	c.success("Deleted %s.", display)
	return nil
}
