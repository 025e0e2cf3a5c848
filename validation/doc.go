// Package validation provides struct validation via `validate` tags,
// used by the config loader on decoded configuration structs.
package validation
