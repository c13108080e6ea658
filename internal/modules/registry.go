// Package modules assembles Latch's host module registry (spec.md §4.5):
// each module is a name→BuiltinFn table that `use`/`import` binds into a
// script's environment. The core invokes them with already-evaluated
// arguments and expects a Value or a *value.RuntimeError.
package modules

import (
	"github.com/latch-lang/latch/internal/config"
	"github.com/latch-lang/latch/internal/modules/ai"
	"github.com/latch-lang/latch/internal/modules/base64mod"
	"github.com/latch-lang/latch/internal/modules/csvmod"
	"github.com/latch-lang/latch/internal/modules/envmod"
	"github.com/latch-lang/latch/internal/modules/fs"
	"github.com/latch-lang/latch/internal/modules/hashmod"
	"github.com/latch-lang/latch/internal/modules/httpmod"
	"github.com/latch-lang/latch/internal/modules/jsonmod"
	"github.com/latch-lang/latch/internal/modules/mathmod"
	"github.com/latch-lang/latch/internal/modules/pathmod"
	"github.com/latch-lang/latch/internal/modules/proc"
	"github.com/latch-lang/latch/internal/modules/regexmod"
	"github.com/latch-lang/latch/internal/modules/setmod"
	"github.com/latch-lang/latch/internal/modules/timemod"
	"github.com/latch-lang/latch/internal/value"
)

// Registry builds the name→module table wired into an Interp (the 14 host
// modules SPEC_FULL.md's Domain Stack enumerates).
func Registry(cfg config.Config) map[string]map[string]*value.Builtin {
	return map[string]map[string]*value.Builtin{
		"fs":     fs.Module(),
		"proc":   proc.Module(),
		"http":   httpmod.Module(),
		"json":   jsonmod.Module(),
		"env":    envmod.Module(),
		"path":   pathmod.Module(),
		"time":   timemod.Module(),
		"ai":     ai.Module(cfg),
		"regex":  regexmod.Module(),
		"csv":    csvmod.Module(),
		"base64": base64mod.Module(),
		"hash":   hashmod.Module(),
		"math":   mathmod.Module(),
		"set":    setmod.Module(),
	}
}
