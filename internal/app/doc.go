// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle, decoupled from any
// specific entrypoint such as the CLI.
package app
