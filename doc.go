/*
Package concord exposes Discord server management to AI agents as a set of
named, schema-described tools over the Model Context Protocol (MCP).

The core is a tool-invocation pipeline: a static registry of ~30
operations, a dispatcher that validates untyped argument payloads before
any network activity, a single authenticated Discord session shared by
every in-flight call, and an error mapper that folds platform failures
into a small stable taxonomy calling clients can reason about uniformly.

# Architecture

Concord follows a hexagonal layout. The dispatch core (registry,
dispatcher, session) is decoupled from its adapters: the Discord platform
adapter on one side, the MCP transport on the other. The platform client
is an interface (ports.Client), so the whole pipeline runs against a fake
in tests.

	inbound tool call
	  -> dispatcher: registry lookup, schema validation, session gate
	  -> platform adapter: the actual Discord calls
	       (pagination, batching, rate-limit pauses)
	  -> error mapper: platform failure -> stable error kind
	  -> normalized result envelope

# Usage

	sys, err := concord.New(token)
	if err != nil {
		log.Fatal(err)
	}
	if err := sys.Session.Open(ctx); err != nil {
		log.Fatal(err)
	}
	defer sys.Session.Close()

	res := sys.Dispatcher.Dispatch(ctx, domain.ToolCallRequest{
		Name: "send_message",
		Args: map[string]any{"channel_id": "123", "content": "hello"},
	})

The cmd/concord binary wraps this in an MCP server with stdio and SSE
transports.
*/
package concord
