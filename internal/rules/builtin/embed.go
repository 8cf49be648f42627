// Package builtin embeds the lexicon, grammar and junk tables via go:embed.
package builtin

import "embed"

//go:embed *.yaml
var builtinTables embed.FS

// FS returns the embedded filesystem containing the built-in tables.
func FS() embed.FS {
	return builtinTables
}
