package models

// ScriptDirectory is a numbered directory under the base path, e.g. "scripts3" with ID 3.
type ScriptDirectory struct {
	Name string
	ID   int
}

// ScriptFile is a script inside one ScriptDirectory.
type ScriptFile struct {
	Name        string
	Size        int64
	Description string // leading "---" comment, if any
}
