// Package logger builds configured slog.Logger instances with text or JSON
// handlers. Components in this module accept a *slog.Logger in their
// constructors and fall back to slog.Default() when given nil.
package logger
