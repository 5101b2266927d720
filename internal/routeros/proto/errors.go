// Package proto implements the RouterOS API wire protocol: length-prefixed
// words, word-sequence sentences, and the tag-correlated request/response
// primitives built on top of them.
//
// Reference: https://help.mikrotik.com/docs/display/ROS/API
package proto

import "errors"

var (
	// ErrProtocol is a sentinel for wire-level protocol violations: malformed
	// length prefixes, a sentence with no recognized type word, a response
	// sentence missing its ".tag" api-attribute. Wrap with fmt.Errorf to add
	// context.
	ErrProtocol = errors.New("routeros protocol error")

	// ErrTrap is a sentinel identifying a response that completed with a
	// "!trap" sentence. ResponseError wraps this.
	ErrTrap = errors.New("routeros trap")
)
