package domain

// ToolCallRequest is one inbound tool invocation: a registered tool name
// plus the untyped argument payload as it arrived from the client.
type ToolCallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// Status tags a Result as success or error.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of one dispatched tool call. On success Payload
// holds the handler's structured return value. On error Err holds the
// normalized envelope; Payload may additionally carry partial-success
// progress for composite operations.
type Result struct {
	Status  Status    `json:"status"`
	Payload any       `json:"payload,omitempty"`
	Err     *Envelope `json:"error,omitempty"`
}

// Success wraps a handler payload into a success result.
func Success(payload any) Result {
	return Result{Status: StatusSuccess, Payload: payload}
}

// Failure wraps an error envelope into an error result.
func Failure(env *Envelope) Result {
	return Result{Status: StatusError, Err: env}
}

// PartialFailure reports a composite operation that partially committed:
// the envelope describes the failure, progress describes what succeeded.
func PartialFailure(env *Envelope, progress any) Result {
	return Result{Status: StatusError, Err: env, Payload: progress}
}
