package menu

import (
	"fmt"
	"strconv"

	"github.com/meysamhadeli/scriptbox/script_index"
)

// selectScript runs the two-step selection shared by view and delete: a directory id,
// then a 1-based position in that directory's sorted scripts. Bad input aborts.
func (m *Menu) selectScript() (string, string, error) {
	dirs := m.index.ListDirectories()
	if len(dirs) == 0 {
		return "", "", script_index.NewError(script_index.ErrCodeNotFound, "no script directories found in %s", m.index.BasePath())
	}
	m.printDirectories(dirs)

	id, err := m.promptDirectoryID("Directory id:")
	if err != nil {
		return "", "", err
	}

	dirName, ok := findDirectory(dirs, id)
	if !ok {
		return "", "", script_index.NewError(script_index.ErrCodeNotFound, "directory %s does not exist", m.index.DirectoryName(id))
	}

	scripts := m.index.ListScripts(dirName)
	if len(scripts) == 0 {
		return "", "", script_index.NewError(script_index.ErrCodeNotFound, "%s has no scripts", dirName)
	}
	for i, script := range scripts {
		m.println(fmt.Sprintf("  [%d] %s (%d bytes)", i+1, script.Name, script.Size))
	}

	answer, err := m.input.InputPrompt("Script number:")
	if err != nil {
		return "", "", err
	}
	position, err := strconv.Atoi(answer)
	if err != nil || position < 1 || position > len(scripts) {
		return "", "", script_index.NewError(script_index.ErrCodeInvalidInput, "%q is not a script number between 1 and %d", answer, len(scripts))
	}

	return dirName, scripts[position-1].Name, nil
}

func (m *Menu) viewScript() error {
	dirName, fileName, err := m.selectScript()
	if err != nil {
		return err
	}
	return m.showScript(dirName, fileName)
}
