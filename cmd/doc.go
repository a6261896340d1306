// Package cmd implements the taskboard command line interface.
//
// The serve command wires the Firestore-backed task store, the Google
// sign-in flow, instrumentation, and the HTTP board server together and
// runs until interrupted.
package cmd
