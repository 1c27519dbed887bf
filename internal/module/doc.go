// Package module dispatches one command per worker process. Handlers are
// registered at startup; Run reads the single request, enforces the
// credential and deadline contract, invokes the matching handler, and emits
// exactly one terminal response before reporting an exit code.
package module
