// Package domain holds the core value types shared across the Concord
// components: the tool call request/result shapes and the stable error
// taxonomy surfaced to calling clients.
//
// Nothing in this package talks to Discord or to the MCP transport. It is
// the vocabulary the dispatcher, registry and adapters agree on.
package domain
