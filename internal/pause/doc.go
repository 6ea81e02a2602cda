// Package pause inserts a printer pause in front of a chosen layer of a
// sliced g-code stream.
//
// The injected directive is:
//
//	;TYPE:CUSTOM
//	;pause added by post processing
//	;script: PauseAtLayerCraftBot.py
//	M300 P2000 S50 ;beep            (only when ShouldBeep)
//	G197 <message> ;pause
//
// Inject is a pure function of its inputs. It never fails: a layer that is
// never reached leaves the stream untouched, and Result reports whether and
// where the directive landed.
//
// Inject is not idempotent. The beep and pause lines are instructions, not
// comments, so running the filter over its own output inserts a second
// directive in front of them.
package pause
