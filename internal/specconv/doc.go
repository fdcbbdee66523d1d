// Package specconv translates tool-calling payloads between OpenAI's Chat
// Completions wire format and Anthropic's Messages wire format.
//
// The package operates on schema-less JSON values (map[string]any / []any as
// produced by encoding/json), because callers routinely hand it payloads that
// are already partially in the target shape or in a bare "generic" shape.
// Typed request structs cannot represent that pass-through contract.
//
// The converter handles:
//
//   - Format detection: structural heuristics decide whether a request body is
//     OpenAI- or Anthropic-shaped, without an explicit discriminator field.
//
//   - Tool definitions: OpenAI nests declarations under {type:"function",
//     function:{...}}; Anthropic flattens them to {name, description,
//     input_schema}.
//
//   - Message history: OpenAI models tool results as standalone "tool"-role
//     messages, Anthropic folds them into the content array of the following
//     user turn. Converting toward Anthropic therefore buffers tool results
//     until a user turn (or end of history) is reached.
//
//   - Responses: choices/finish_reason vs. content blocks/stop_reason, with
//     usage field renames in both directions.
//
// Every conversion is a pure structural transform: no input is mutated in
// place, no state is shared between calls, and malformed optional fields are
// defaulted rather than rejected.
package specconv
