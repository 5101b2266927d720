package proto

import "github.com/google/uuid"

// Request is an outgoing command sentence correlated with its eventual
// reply sentences by a unique tag, so that several requests can be
// in-flight at once over a single connection.
type Request struct {
	Tag     string
	Command string
	Attrs   map[string]string
}

// NewRequest builds a Request for command with a freshly generated tag.
func NewRequest(command string, attrs map[string]string) Request {
	return Request{
		Tag:     uuid.New().String(),
		Command: command,
		Attrs:   attrs,
	}
}

// Words renders the request as the word sequence WriteSentenceWords expects.
func (r Request) Words() []string {
	return BuildSentence(r.Command, r.Attrs, map[string]string{"tag": r.Tag})
}
