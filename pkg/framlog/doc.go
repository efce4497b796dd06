// Package framlog implements a crash-surviving circular log on top of a
// small nonvolatile byte store.
//
// The log occupies a fixed window at the start of the store. Records are
// plain UTF-8 text written back to back. A single zero byte after the
// newest record terminates the log; appending overwrites the previous
// terminator so exactly one is maintained. The write cursor lives only in
// RAM and starts at the window origin on every boot, so a session always
// overwrites from the start while the tail of the previous session stays
// readable until reached.
//
// Writes are split into transfers no longer than the store transfer
// limit. A record crossing the window end wraps, its tail continuing at
// the window origin.
//
// Replay reads the window from the origin up to the terminator and
// renders the recovered text of the previous session. The Capture hook
// persists panic diagnostics through the same logger before parking the
// process, keeping the trail intact across a power cycle.
package framlog
