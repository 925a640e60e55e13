// Package core contains the shared primitives of agentlab: role-based content
// with polymorphic parts, run-scoped execution context and the constrained
// tool invocation context handed to callbacks.
package core
