package menu

func (m *Menu) deleteScript() error {
	dirName, fileName, err := m.selectScript()
	if err != nil {
		return err
	}
	return m.removeScript(dirName, fileName)
}
