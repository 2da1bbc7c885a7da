package script_index

import (
	"bufio"
	"strings"
)

// readDescription returns the text of the first "---" comment before any code.
// "---@" annotations are skipped. Unreadable files have no description.
func (index *ScriptIndex) readDescription(path string) string {
	file, err := index.fs.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "---") {
			return ""
		}
		desc := strings.TrimSpace(strings.TrimPrefix(line, "---"))
		if desc == "" || strings.HasPrefix(desc, "@") {
			continue
		}
		return desc
	}
	return ""
}
