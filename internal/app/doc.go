// Package app contains the core application logic: the linear startup
// sequence from session registration through dispatch to the blocking
// event loop, decoupled from the CLI entrypoint.
package app
