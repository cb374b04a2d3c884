// Package cookiestore persists per-account cookie jars as a single JSON
// object mapping account name to a list of cookie records.
//
// The whole file is rewritten on every save (read-modify-write), patching
// only the caller's account so entries for other accounts survive intact.
// Writes go through a temp-file rename and are serialized on the store
// instance; cross-process coordination is last-writer-wins by design,
// since the declared invariant is one account, one session, one process.
//
// Loading applies a conservative all-or-nothing expiry policy: a jar
// containing any expired cookie fails with ErrExpired rather than being
// partially salvaged, because a partially expired auth/session pairing is
// unsafe to reuse.
package cookiestore
