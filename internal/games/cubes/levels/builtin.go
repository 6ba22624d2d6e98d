package levels

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.toml builtin/*.yaml
var builtinFS embed.FS

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{fsys: sub}
}

// Open returns a loader for dir, or the built-in levels when dir is empty.
func Open(dir string) *Loader {
	if dir == "" {
		return Builtin()
	}
	return NewLoader(dir)
}
