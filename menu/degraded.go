package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/scriptbox/constants/lipgloss"
	"github.com/meysamhadeli/scriptbox/script_index/contracts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const degradedMenu = `Degraded Menu:
  [1] Create Script
  [2] View Script
  [3] Delete Script
  [Q] Quit`

// DegradedMenu is the reduced loop used when directories cannot be listed. Scripts are
// addressed by directory id and file name instead of being picked from a listing.
type DegradedMenu struct {
	console
	reason error
}

// NewDegradedMenu wires a degraded menu; reason is shown to the user at startup.
func NewDegradedMenu(index contracts.IScriptIndex, fs afero.Fs, in io.Reader, out io.Writer, opts Options, reason error, log *logrus.Entry) *DegradedMenu {
	return &DegradedMenu{console: newConsole(index, fs, in, out, opts, log), reason: reason}
}

// Run shows the degraded menu until the user quits or input ends.
func (d *DegradedMenu) Run() error {
	d.clearScreen()
	d.warn("Directory listing is unavailable; running in degraded mode.")
	if d.reason != nil {
		d.warn("Reason: %v", d.reason)
	}
	d.println("Scripts are addressed by directory id and script name; listing is disabled.")

	for {
		d.println(lipgloss.BoxStyle.Render(degradedMenu))

		choice, err := d.input.InputPrompt("Select an option:")
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.println()
				return nil
			}
			return err
		}

		switch strings.ToUpper(choice) {
		case "1":
			d.runAction("Create", d.create)
		case "2":
			d.runAction("View", d.view)
		case "3":
			d.runAction("Delete", d.remove)
		case "Q":
			d.println("Goodbye.")
			return nil
		default:
			d.failure(fmt.Errorf("invalid choice %q, please select 1-3 or Q", choice))
		}
	}
}

// target prompts for a directory id and a script name.
func (d *DegradedMenu) target() (string, string, error) {
	id, err := d.promptDirectoryID("Directory id:")
	if err != nil {
		return "", "", err
	}
	name, err := d.input.InputPrompt("Script name:")
	if err != nil {
		return "", "", err
	}
	fileName, err := normalizeScriptName(name, d.index.Suffix())
	if err != nil {
		return "", "", err
	}
	return d.index.DirectoryName(id), fileName, nil
}

func (d *DegradedMenu) create() error {
	dirName, fileName, err := d.target()
	if err != nil {
		return err
	}
	if err := d.index.EnsureDirectory(d.index.DirectoryPath(dirName)); err != nil {
		return err
	}
	return d.writeScript(dirName, fileName)
}

func (d *DegradedMenu) view() error {
	dirName, fileName, err := d.target()
	if err != nil {
		return err
	}
	return d.showScript(dirName, fileName)
}

func (d *DegradedMenu) remove() error {
	dirName, fileName, err := d.target()
	if err != nil {
		return err
	}
	return d.removeScript(dirName, fileName)
}
