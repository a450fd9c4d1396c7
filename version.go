package gascript

// Version and BuildDate are surfaced by the gas CLI.
const (
	Version   = "0.1.0"
	BuildDate = "unreleased"
)
