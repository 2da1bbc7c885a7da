package menu

import (
	"strings"
)

// createScript writes a new script into an existing, new or on-the-fly directory.
func (m *Menu) createScript() error {
	dirs := m.index.ListDirectories()
	m.printDirectories(dirs)

	answer, err := m.input.InputPrompt("Directory id (or N for a new directory):")
	if err != nil {
		return err
	}

	var dirName string
	if strings.EqualFold(answer, "n") {
		id, err := m.index.NextDirectoryID()
		if err != nil {
			return err
		}
		dirName = m.index.DirectoryName(id)
	} else {
		id, err := parseDirectoryID(answer)
		if err != nil {
			return err
		}
		// Unknown ids are created rather than rejected.
		var ok bool
		if dirName, ok = findDirectory(dirs, id); !ok {
			dirName = m.index.DirectoryName(id)
		}
	}

	if err := m.index.EnsureDirectory(m.index.DirectoryPath(dirName)); err != nil {
		return err
	}

	name, err := m.input.InputPrompt("Script name:")
	if err != nil {
		return err
	}
	fileName, err := normalizeScriptName(name, m.index.Suffix())
	if err != nil {
		return err
	}

	return m.writeScript(dirName, fileName)
}
