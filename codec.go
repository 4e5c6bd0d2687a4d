package valimq

import (
	"encoding/json"
	"fmt"
)

// JsonMarshaler encodes protocol bodies as UTF-8 JSON, the only encoding the
// wire contract allows. []byte and string values pass through untouched.
type JsonMarshaler struct{}

func (j JsonMarshaler) Marshal(v any) ([]byte, error) {
	switch d := v.(type) {
	case []byte:
		return d, nil
	case string:
		return []byte(d), nil
	default:
		return json.Marshal(v)
	}
}

func (j JsonMarshaler) Unmarshal(d []byte, v any) error {
	return json.Unmarshal(d, v)
}

func (j JsonMarshaler) String() string {
	return "json"
}

// DecodeRequest parses a request body. A failure is terminal for the message:
// the responder rejects it without requeue because it can never parse later.
func DecodeRequest(m Marshaler, body []byte) (*Request, error) {
	var req Request
	if err := m.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return &req, nil
}

// DecodeReply parses a reply body.
func DecodeReply(m Marshaler, body []byte) (*Reply, error) {
	var rep Reply
	if err := m.Unmarshal(body, &rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return &rep, nil
}
