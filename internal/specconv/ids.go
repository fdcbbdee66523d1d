package specconv

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// ID prefixes used when the source payload omits identifiers.
const (
	openAICallIDPrefix     = "call_"
	anthropicCallIDPrefix  = "toolu_"
	chatCompletionIDPrefix = "chatcmpl-"
	messageIDPrefix        = "msg_"
)

// NewToolCallID generates a tool call identifier: the given prefix followed by
// 12 lowercase hex characters. Collision avoidance, not security, is the
// concern here, so UUID randomness is plenty.
func NewToolCallID(prefix string) string {
	u := uuid.New()
	return prefix + hex.EncodeToString(u[:6])
}

// newResponseID generates a response identifier with an 8-hex-character
// suffix, used when a converted response carries no id of its own.
func newResponseID(prefix string) string {
	u := uuid.New()
	return prefix + hex.EncodeToString(u[:4])
}
