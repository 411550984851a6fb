// Package dispatch gives every kernel query one calling convention for
// scalar and sequence inputs.
//
// A query is described by an Entry: the kernel's scalar entry point and
// its vector entry point. Call picks one from the shape of the input
// Value, checks the returned status through status.Check with the handle
// attached and returns a Value of the same shape. Raw status codes never
// leave this package.
//
// Two-argument queries come in two separately named forms. Paired
// evaluates elementwise over equal-length inputs; Outer evaluates over the
// full grid of both inputs.
package dispatch
