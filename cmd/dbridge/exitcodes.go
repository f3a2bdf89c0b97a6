package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success or nothing to do
	ExitError       = 1 // Transport failure or other unrecoverable error
	ExitConfigError = 2 // Missing or invalid configuration
)
