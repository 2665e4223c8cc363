package config

import (
	"sort"

	"github.com/1broseidon/komotile/internal/layout"
)

// builtinLayoutNames lists every built-in DefaultLayout under the name
// used in configuration files and the command socket.
var builtinLayoutNames = map[string]layout.DefaultLayout{
	"bsp":                      layout.BSP,
	"columns":                  layout.Columns,
	"rows":                     layout.Rows,
	"vertical_stack":           layout.VerticalStack,
	"horizontal_stack":         layout.HorizontalStack,
	"ultrawide_vertical_stack": layout.UltrawideVerticalStack,
	"grid":                     layout.Grid,
}

// builtinLayoutByName resolves a built-in layout name to its layout.Layout
// value. These are always available without being declared in YAML; only
// layouts authored via CustomLayouts need a config entry.
func builtinLayoutByName(name string) (layout.Layout, bool) {
	dl, ok := builtinLayoutNames[name]
	return dl, ok
}

// BuiltinLayoutNames returns the sorted set of built-in layout names, used
// by `komotilectl configure`'s layout choice and the LIST_LAYOUTS query.
func BuiltinLayoutNames() []string {
	names := make([]string, 0, len(builtinLayoutNames))
	for name := range builtinLayoutNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
