// Package cookiejar holds the in-memory representation of session
// credentials: the Cookie record, the per-account Jar with replace-by-key
// merge semantics, Set-Cookie response header parsing and Cookie request
// header formatting.
//
// Expiry is evaluated lazily wherever a cookie is read; nothing purges
// cookies in the background. Persistence of jars lives in the cookiestore
// package.
package cookiejar
