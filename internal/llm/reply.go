package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type ReplyKind int

const (
	// ReplyStructured carries function-call arguments produced by the model.
	ReplyStructured ReplyKind = iota + 1
	// ReplyRawText carries free text that is expected to hold a JSON object.
	ReplyRawText
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyStructured:
		return "structured"
	case ReplyRawText:
		return "raw_text"
	default:
		return "unknown"
	}
}

// Reply is what the model answered, tagged by how it answered.
type Reply struct {
	Kind    ReplyKind
	Payload string
}

var errNotObject = errors.New("expected a JSON object")

// ParseError keeps the raw model output for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Model response could not be parsed as JSON. Raw text: '%s'. Error: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse yields the JSON object carried by the reply.
func (r Reply) Parse() (json.RawMessage, error) {
	var candidate string
	switch r.Kind {
	case ReplyStructured:
		candidate = strings.TrimSpace(r.Payload)
	case ReplyRawText:
		candidate = stripCodeFence(strings.TrimSpace(r.Payload))
	default:
		return nil, &ParseError{Raw: r.Payload, Err: fmt.Errorf("unknown reply kind %d", r.Kind)}
	}

	data := []byte(candidate)
	if !json.Valid(data) {
		var probe interface{}
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &ParseError{Raw: r.Payload, Err: err}
	}
	if !bytes.HasPrefix(data, []byte("{")) {
		return nil, &ParseError{Raw: r.Payload, Err: errNotObject}
	}
	return json.RawMessage(data), nil
}

// ParseInto runs Parse and decodes the object into v.
func (r Reply) ParseInto(v interface{}) error {
	raw, err := r.Parse()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Raw: r.Payload, Err: err}
	}
	return nil
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
