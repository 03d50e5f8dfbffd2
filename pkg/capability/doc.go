// Package capability describes interface-like contracts at runtime: named
// sets of operations with structural signatures, built with Declare or
// derived from a Go interface with FromInterface.
package capability
