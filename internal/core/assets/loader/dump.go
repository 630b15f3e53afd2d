package loader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/zeusync/gmruntime/internal/core/observability/log"
	"github.com/zeusync/gmruntime/pkg/sequence"
)

// ImplementedMarker prefixes dumped names the VM implements natively.
const ImplementedMarker = "[IMPLEMENTED] "

var compiledPrefixes = []string{
	"gml_Object_",
	"gml_Script_",
	"gml_GlobalScript_",
	"gml_RoomCC_",
}

// CalledFunctions filters calls down to the functions not compiled from the
// game itself, sorted and marked against builtins.
func CalledFunctions(calls map[string]struct{}, builtins BuiltinSet) []string {
	names := sequence.From(slices.Collect(maps.Keys(calls))).
		Filter(func(name string) bool { return !isCompiled(name) }).
		Sort(func(a, b string) bool { return a < b })

	return sequence.Map(names, func(name string) string {
		if builtins != nil && builtins.Has(name) {
			return ImplementedMarker + name
		}
		return name
	}).Collect()
}

func isCompiled(name string) bool {
	for _, p := range compiledPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func (s *session) dumpFunctions() error {
	names := CalledFunctions(s.calls, s.builtins)
	if err := os.WriteFile(s.dumpPath, []byte(strings.Join(names, "\n")), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.dumpPath, err)
	}
	s.log.Info("function usage written",
		log.String("path", s.dumpPath),
		log.Int("functions", len(names)),
	)
	return nil
}
