package chatshare

// Role identifies the speaker of a conversation turn.
type Role string

// Speaker roles found on share pages.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known speaker roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Turn is one speaker's contribution to a conversation.
type Turn struct {
	// Number is the 1-based position of the turn after filtering and
	// deduplication.
	Number int  `json:"turn"`
	Role   Role `json:"role"`

	// Text is the whitespace-normalized plain text of the turn.
	Text string `json:"text"`

	// Markdown is the markdown rendering of the same content.
	Markdown string `json:"markdown"`

	CodeBlocks []string `json:"code_blocks"`
	Links      []string `json:"links"`
	Images     []string `json:"images"`

	// RawHTML is the markup of the message body. Only the DOM strategy
	// sets it.
	RawHTML string `json:"raw_html"`
}

// IsEmpty reports whether the turn carries neither text nor markdown.
func (t *Turn) IsEmpty() bool {
	return t.Text == "" && t.Markdown == ""
}

// Validate returns an error if the turn contains invalid fields.
func (t *Turn) Validate() error {
	if t.Number < 1 {
		return Errorf(EINVALID, "turn number must be positive")
	}
	if t.Role == "" {
		return Errorf(EINVALID, "turn role required")
	}
	if t.IsEmpty() {
		return Errorf(EINVALID, "turn text or markdown required")
	}
	return nil
}
