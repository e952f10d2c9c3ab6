package chatpod

import "strings"

type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// Message is one entry of a conversation transcript.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Text: text}
}

// normalizeRole maps whatever role the history backend persisted onto the two
// roles a transcript knows about. Anything that is not the user is the bot.
func normalizeRole(role string) Role {
	if strings.EqualFold(strings.TrimSpace(role), string(RoleUser)) {
		return RoleUser
	}
	return RoleSystem
}
