package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meysamhadeli/scriptbox/constants/lipgloss"
	"github.com/pterm/pterm"
)

// listScripts prints every directory with its scripts. Empty directories are shown as such.
func (m *Menu) listScripts() error {
	dirs := m.index.ListDirectories()
	if len(dirs) == 0 {
		m.println(lipgloss.Gray.Render(fmt.Sprintf("No script directories found in %s.", m.index.BasePath())))
		return nil
	}

	for _, dir := range dirs {
		m.println(lipgloss.Info.Render(dir.Name + "/"))

		scripts := m.index.ListScripts(dir.Name)
		if len(scripts) == 0 {
			m.println("  (empty)")
			continue
		}

		data := pterm.TableData{{"#", "Script", "Size", "Description"}}
		for i, script := range scripts {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				script.Name,
				fmt.Sprintf("%d bytes", script.Size),
				script.Description,
			})
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("cannot render scripts of %s: %w", dir.Name, err)
		}
		for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
			m.println("  " + line)
		}
	}
	return nil
}
