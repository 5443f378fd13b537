package main

// Default limits for CLI commands.
const (
	DefaultGenerateCount = 10
	DefaultListLimit     = 50
	DefaultSearchLimit   = 10
)
