package contracts

import "github.com/meysamhadeli/scriptbox/script_index/models"

type IScriptIndex interface {
	ListDirectories() []models.ScriptDirectory
	NextDirectoryID() (int, error)
	ListScripts(dirName string) []models.ScriptFile
	EnsureDirectory(path string) error
	DirectoryName(id int) string
	DirectoryPath(dirName string) string
	ScriptPath(dirName string, fileName string) string
	Suffix() string
	BasePath() string
	Probe() error
}
