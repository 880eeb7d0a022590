// Package leakcheck tracks live reference-counted objects and reports the
// ones still owned when the program asks (normally at exit via ptr.Fini).
//
// Reference counting cannot reclaim cycles: two Shared owners that only
// reach each other keep both strong counts above zero forever. The leak
// checker does not try to break such cycles. It lists every object whose
// dispose hook has not run, oldest first, together with the call site that
// created it, so the cycle can be found and broken with a Weak observer.
//
// Two layers:
//   - Statistics (Stats): always-on counters of created, disposed and freed
//     blocks. Cheap enough for production.
//   - Registry (Track/Untrack/Live): per-object records with creation stacks.
//     Off by default; enable with Enable or REFPTR_LEAKCHECK=1.
//
// Configuration (REFPTR_LEAKCHECK):
//
//	unset, "0", "false", "off"  disabled
//	"1", "true", "on", "text"   enabled, text report
//	"yaml"                      enabled, YAML report
package leakcheck
