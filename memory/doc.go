// Package memory contains the conversation history store used by agents. The
// message type resides in the core package; this package only provides the
// append-only, process-local container. Swap in a durable implementation at
// wiring time for long-term memory backends.
package memory
