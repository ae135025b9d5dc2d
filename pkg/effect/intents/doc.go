// Package intents provides common intent types and their default handlers:
// file reads and writes, delays, clock and UUID generation, and HTTP
// requests.
//
// The intent values are inert data; business logic wraps them in Effects
// and never touches I/O. Table() returns a handler table performing them
// for real, and every entry can be replaced by registering over it. Tests
// usually substitute stubs via testkit instead of using Table() at all.
package intents
