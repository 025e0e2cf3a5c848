// Package logger provides structured logging built on zerolog.
//
// The client uses it for debug-level visibility into request construction
// and the send lifecycle. Applications can inject their own instance via
// requiem.NewWithLogger, or rely on Nop when debugging is off.
package logger
