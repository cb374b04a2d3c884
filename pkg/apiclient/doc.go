// Package apiclient wraps HTTP access to the remote session API: base URL
// joining, explicit timeouts, User-Agent injection, Basic-Auth credential
// encoding and Set-Cookie extraction. Higher layers (session, twofactor)
// share one Client and attach per-request credentials through options.
package apiclient
