package sim

import "log"

// DebugAsserts makes invariant violations fatal. Left off in release,
// where callers degrade to a no-op or zero return instead.
var DebugAsserts = false

// assert checks a programmer-error invariant and reports whether it held.
func assert(cond bool, format string, args ...interface{}) bool {
	if cond {
		return true
	}
	if DebugAsserts {
		log.Panicf("assertion failed: "+format, args...)
	}
	log.Printf("assertion failed: "+format, args...)
	return false
}
