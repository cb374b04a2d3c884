// Package session orchestrates authentication against the remote API for
// a single account: resume persisted cookies, issue the credential login
// call, resolve a two-factor challenge when the server signals one, and
// persist the resulting jar.
//
// The state machine per run is
//
//	Unauthenticated -> (resume + credential call) -> Authenticated
//	Unauthenticated -> (credential call)          -> ChallengePending | Failed
//	ChallengePending -> (two-factor resolver)     -> Authenticated | Failed
//
// Authenticated and Failed are terminal; a new Authenticate call starts a
// fresh run. Store failures during resume are absorbed, resolver failures
// propagate unchanged, and persistence failures after a successful login
// are reported without rolling back the in-memory session.
package session
