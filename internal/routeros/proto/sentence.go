package proto

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Sentence is the parsed form of a RouterOS API sentence: a type word
// (a command path such as "/ip/dns/static/add", or a reply marker such as
// "!re", "!done", "!trap", "!fatal") followed by "=key=value" attribute
// words and ".key=value" api-attribute words.
type Sentence struct {
	Type       string
	Attributes map[string]string
	APIAttrs   map[string]string
}

// Tag returns the sentence's ".tag" api-attribute, used to correlate a
// reply with the request that produced it.
func (s Sentence) Tag() (string, bool) {
	v, ok := s.APIAttrs["tag"]
	return v, ok
}

// ParseSentence classifies a raw word sequence (as read by
// ReadSentenceWords) into a Sentence.
func ParseSentence(words []string) (Sentence, error) {
	if len(words) == 0 {
		return Sentence{}, fmt.Errorf("%w: empty sentence", ErrProtocol)
	}
	s := Sentence{
		Type:       words[0],
		Attributes: make(map[string]string, len(words)-1),
		APIAttrs:   make(map[string]string),
	}
	for _, word := range words[1:] {
		switch {
		case strings.HasPrefix(word, "="):
			key, value, ok := splitAttrWord(word[1:])
			if !ok {
				return Sentence{}, fmt.Errorf("%w: malformed attribute word %q", ErrProtocol, word)
			}
			s.Attributes[key] = value
		case strings.HasPrefix(word, "."):
			key, value, ok := splitAttrWord(word[1:])
			if !ok {
				return Sentence{}, fmt.Errorf("%w: malformed api-attribute word %q", ErrProtocol, word)
			}
			s.APIAttrs[key] = value
		default:
			return Sentence{}, fmt.Errorf("%w: unrecognized word %q", ErrProtocol, word)
		}
	}
	return s, nil
}

func splitAttrWord(s string) (key, value string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// BuildSentence renders a command word plus attribute and api-attribute
// maps into the word sequence WriteSentenceWords expects. Keys are sorted
// so the wire encoding of a given sentence is deterministic.
func BuildSentence(command string, attrs, apiAttrs map[string]string) []string {
	words := make([]string, 0, 1+len(attrs)+len(apiAttrs))
	words = append(words, command)
	for _, k := range sortedKeys(attrs) {
		words = append(words, "="+k+"="+attrs[k])
	}
	for _, k := range sortedKeys(apiAttrs) {
		words = append(words, "."+k+"="+apiAttrs[k])
	}
	return words
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteSentenceWords writes words followed by the empty terminator word.
func WriteSentenceWords(w io.Writer, words []string) error {
	for _, word := range words {
		if err := WriteWord(w, word); err != nil {
			return err
		}
	}
	return WriteWord(w, "")
}

// ReadSentenceWords reads words from r until the empty terminator word,
// returning the words read (the terminator itself is consumed but not
// included). It blocks for as long as r blocks; callers that need to poll
// for the start of a new sentence should read the sentence's first word
// separately with ReadWordHeaderByte/ReadWordRemainder under a deadline,
// then pass the remainder of the read to this function.
func ReadSentenceWords(r io.Reader) ([]string, error) {
	var words []string
	for {
		word, err := ReadWord(r)
		if err != nil {
			return nil, err
		}
		if word == "" {
			return words, nil
		}
		words = append(words, word)
	}
}
