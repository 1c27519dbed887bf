// Package services defines the error taxonomy shared by command handlers and
// hosts clients for the external tools the worker drives.
//
// Handlers tag failures with one of the sentinel markers so the dispatcher
// can classify them uniformly: validation problems, missing external tools,
// and engine failures all surface as well-formed error Responses, while
// protocol and timeout failures terminate the process.
package services
