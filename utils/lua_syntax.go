package utils

import (
	"strings"

	"github.com/yuin/gopher-lua/parse"
)

// CheckLuaSyntax parses source as a Lua chunk without running it.
func CheckLuaSyntax(name string, source string) error {
	_, err := parse.Parse(strings.NewReader(source), name)
	return err
}
