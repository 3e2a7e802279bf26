// Package cli implements the interactive terminal client: a small REPL that
// walks the user through signup or login, license generation and
// verification, backed by the local license cache.
package cli
