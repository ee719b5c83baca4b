// Package feed fans out live sentiment updates to WebSocket clients.
//
// A single actor goroutine owns all connection state; handlers talk to it
// through a command channel. Each connection gets its own writer goroutine
// so one slow client cannot stall the others.
package feed
