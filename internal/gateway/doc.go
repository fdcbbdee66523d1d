// Package gateway hosts the format conversion library behind an HTTP
// surface. It exposes both wire protocols at once: OpenAI clients call
// POST /v1/chat/completions, Anthropic clients call POST /v1/messages, and
// either request is translated into the configured upstream's format,
// forwarded, and the response translated back into the caller's format.
//
// The gateway itself owns only HTTP concerns (decoding, size limits,
// middleware, error envelopes, forwarding); all conversion semantics live in
// the specconv package.
package gateway
