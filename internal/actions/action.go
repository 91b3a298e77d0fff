// Package actions defines the dispatchable operation contract and the
// registry that serves uniform invocation.
//
// Every operation is a named, schema-described, JSON-in/JSON-out unit of
// work. Failure policy is two-tier: recoverable external failures (a
// downstream API returning non-2xx, a lookup missing) come back as a JSON
// envelope with status "error"; malformed input, unreachable infrastructure,
// signing failure, and submission rejection propagate as Go errors.
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/SolAgent-Network/agent_layer/internal/agent"
)

// Example is a worked input/output pair published with an action's metadata
// so external tool-calling systems can learn its shape.
type Example struct {
	Input       map[string]any `json:"input"`
	Output      map[string]any `json:"output"`
	Explanation string         `json:"explanation"`
}

// Metadata describes an action for the catalogue. Immutable after
// construction.
type Metadata struct {
	Name        string         `json:"name"`
	Similes     []string       `json:"similes"`
	Description string         `json:"description"`
	Examples    []Example      `json:"examples"`
	InputSchema map[string]any `json:"input_schema"`
}

// Result is the JSON envelope every dispatch terminates in. It always
// carries a "status" discriminator.
type Result map[string]any

// Action is a dispatchable operation. Implementations are stateless except
// for their descriptor and must be safe for concurrent invocation.
type Action interface {
	// Metadata is pure and callable before and after invocation.
	Metadata() Metadata

	// Execute runs the operation against the shared agent. input is the
	// raw JSON payload; nil or empty means an empty object.
	Execute(ctx context.Context, ag *agent.Agent, input json.RawMessage) (Result, error)
}

// Success builds a success envelope around the given fields.
func Success(fields Result) Result {
	out := Result{"status": "success"}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// Errorf builds an error envelope for a recoverable external failure. The
// dispatch itself succeeded, so this travels as a result, not an error.
func Errorf(format string, args ...any) Result {
	return Result{
		"status":  "error",
		"message": fmt.Sprintf(format, args...),
	}
}

// DecodeInput deserializes an action payload into v, rejecting unknown
// fields. Missing or mistyped payloads surface as *InvalidInputError.
func DecodeInput(input json.RawMessage, v any) error {
	if len(bytes.TrimSpace(input)) == 0 {
		input = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &InvalidInputError{Reason: err.Error()}
	}
	return nil
}
