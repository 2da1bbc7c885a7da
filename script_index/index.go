package script_index

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/meysamhadeli/scriptbox/script_index/contracts"
	"github.com/meysamhadeli/scriptbox/script_index/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Config describes where scripts live and how their directories and files are named.
type Config struct {
	BasePath string
	Prefix   string
	Suffix   string
}

// ScriptIndex answers what numbered directories and scripts currently exist.
// Every query rescans the filesystem; nothing is cached between calls.
type ScriptIndex struct {
	fs      afero.Fs
	cfg     Config
	pattern *regexp.Regexp
	log     *logrus.Entry
}

// NewScriptIndex initializes a ScriptIndex over fs. A nil logger discards diagnostics.
func NewScriptIndex(fs afero.Fs, cfg Config, log *logrus.Entry) contracts.IScriptIndex {
	if cfg.BasePath == "" {
		cfg.BasePath = "."
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}

	return &ScriptIndex{
		fs:      fs,
		cfg:     cfg,
		pattern: regexp.MustCompile("^" + regexp.QuoteMeta(cfg.Prefix) + `(\d+)$`),
		log:     log,
	}
}

// ListDirectories returns the directories whose whole name is <prefix><digits>, ascending by id.
func (index *ScriptIndex) ListDirectories() []models.ScriptDirectory {
	entries, err := afero.ReadDir(index.fs, index.cfg.BasePath)
	if err != nil {
		index.log.WithError(err).Debug("base path not readable")
		return []models.ScriptDirectory{}
	}

	dirs := make([]models.ScriptDirectory, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := index.pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			// Digits too large for an int.
			index.log.WithField("name", entry.Name()).Debug("skipping directory with unparsable id")
			continue
		}
		dirs = append(dirs, models.ScriptDirectory{Name: entry.Name(), ID: id})
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		if dirs[i].ID != dirs[j].ID {
			return dirs[i].ID < dirs[j].ID
		}
		return dirs[i].Name < dirs[j].Name
	})

	index.log.WithField("count", len(dirs)).Debug("scanned script directories")
	return dirs
}

// NextDirectoryID is one past the largest existing id. Gaps left by deletions are never reused.
// Once the largest id is math.MaxInt there is no next id.
func (index *ScriptIndex) NextDirectoryID() (int, error) {
	next := 1
	for _, dir := range index.ListDirectories() {
		if dir.ID == math.MaxInt {
			return 0, NewError(ErrCodeIDExhausted, "%s already uses the largest directory id", dir.Name)
		}
		if dir.ID >= next {
			next = dir.ID + 1
		}
	}
	return next, nil
}

// ListScripts returns the files in dirName ending with the script suffix, sorted by name.
func (index *ScriptIndex) ListScripts(dirName string) []models.ScriptFile {
	entries, err := afero.ReadDir(index.fs, index.DirectoryPath(dirName))
	if err != nil {
		index.log.WithError(err).WithField("dir", dirName).Debug("script directory not readable")
		return []models.ScriptFile{}
	}

	scripts := make([]models.ScriptFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), index.cfg.Suffix) {
			continue
		}
		scripts = append(scripts, models.ScriptFile{
			Name:        entry.Name(),
			Size:        entry.Size(),
			Description: index.readDescription(index.ScriptPath(dirName, entry.Name())),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})
	return scripts
}

// EnsureDirectory creates path if it is missing. An existing directory is left as is;
// an existing non-directory is reported and never modified.
func (index *ScriptIndex) EnsureDirectory(path string) error {
	info, err := index.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return NewError(ErrCodeNotADirectory, "%s exists and is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return Wrap(err, ErrCodeFilesystem, "cannot inspect %s", path)
	}

	if err := index.fs.MkdirAll(path, 0o755); err != nil {
		return Wrap(err, ErrCodeFilesystem, "cannot create directory %s", path)
	}
	index.log.WithField("path", path).Debug("created script directory")
	return nil
}

// Probe checks once that the base path can be enumerated. A base path that does not
// exist yet is fine; one that exists but cannot be listed is not.
func (index *ScriptIndex) Probe() error {
	_, err := afero.ReadDir(index.fs, index.cfg.BasePath)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return Wrap(err, ErrCodeNoEnumeration, "cannot list %s", index.cfg.BasePath)
}

// DirectoryName is the canonical name for id, without zero padding.
func (index *ScriptIndex) DirectoryName(id int) string {
	return index.cfg.Prefix + strconv.Itoa(id)
}

// DirectoryPath joins dirName onto the base path.
func (index *ScriptIndex) DirectoryPath(dirName string) string {
	return filepath.Join(index.cfg.BasePath, dirName)
}

// ScriptPath is the full path of fileName inside dirName.
func (index *ScriptIndex) ScriptPath(dirName string, fileName string) string {
	return filepath.Join(index.cfg.BasePath, dirName, fileName)
}

// Suffix returns the configured script file suffix.
func (index *ScriptIndex) Suffix() string {
	return index.cfg.Suffix
}

// BasePath returns the directory holding the numbered script directories.
func (index *ScriptIndex) BasePath() string {
	return index.cfg.BasePath
}
