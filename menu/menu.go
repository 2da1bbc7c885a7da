package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/scriptbox/constants/lipgloss"
	"github.com/meysamhadeli/scriptbox/script_index/contracts"
	"github.com/meysamhadeli/scriptbox/script_index/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const mainMenu = `Main Menu:
  [1] Create New Script
  [2] List All Scripts
  [3] View Script
  [4] Delete Script
  [Q] Quit`

// Menu is the interactive loop over the numbered script directories.
type Menu struct {
	console
}

// NewMenu wires a menu reading from in and writing to out.
func NewMenu(index contracts.IScriptIndex, fs afero.Fs, in io.Reader, out io.Writer, opts Options, log *logrus.Entry) *Menu {
	return &Menu{console: newConsole(index, fs, in, out, opts, log)}
}

// Run shows the main menu until the user quits or input ends. Action failures are
// reported and never end the loop.
func (m *Menu) Run() error {
	for {
		m.clearScreen()
		m.println(lipgloss.BoxStyle.Render(mainMenu))

		choice, err := m.input.InputPrompt("Select an option:")
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.println()
				return nil
			}
			return err
		}

		switch strings.ToUpper(choice) {
		case "1":
			m.runAction("Create", m.createScript)
		case "2":
			m.runAction("List", m.listScripts)
		case "3":
			m.runAction("View", m.viewScript)
		case "4":
			m.runAction("Delete", m.deleteScript)
		case "Q":
			m.println("Goodbye.")
			return nil
		default:
			m.failure(fmt.Errorf("invalid choice %q, please select 1-4 or Q", choice))
		}
	}
}

func (m *Menu) printDirectories(dirs []models.ScriptDirectory) {
	if len(dirs) == 0 {
		m.println(lipgloss.Gray.Render("No script directories yet."))
		return
	}
	m.println("Directories:")
	for _, dir := range dirs {
		m.println(fmt.Sprintf("  [%d] %s", dir.ID, dir.Name))
	}
}

// findDirectory returns the first listed directory with id. Listings are sorted, so
// equal ids always resolve to the same directory.
func findDirectory(dirs []models.ScriptDirectory, id int) (string, bool) {
	for _, dir := range dirs {
		if dir.ID == id {
			return dir.Name, true
		}
	}
	return "", false
}
