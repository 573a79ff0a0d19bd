package feed

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"skyflip/internal/domain"
	"skyflip/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Message is one decoded feed envelope. Data holds the payload JSON with any
// string-encoding layer already unwrapped; it may be an object or an array.
type Message struct {
	Type string
	Data jsoniter.RawMessage
}

type envelope struct {
	Type string              `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

// DecodeEnvelope parses a raw feed frame. The data field is either a JSON
// value or a string containing encoded JSON; the latter is unwrapped once.
func DecodeEnvelope(raw []byte) (Message, error) {
	var env envelope

	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, domain.WrapError(err, errcodes.MalformedEvent, "envelope decode")
	}

	if env.Type == "" {
		return Message{}, domain.NewError(errcodes.MalformedEvent, "envelope missing type")
	}

	if len(env.Data) == 0 {
		return Message{}, domain.NewError(errcodes.MalformedEvent, "envelope missing data")
	}

	data := env.Data
	if data[0] == '"' {
		var nested string
		if err := json.Unmarshal(data, &nested); err != nil {
			return Message{}, domain.WrapError(err, errcodes.MalformedEvent, "envelope data unwrap")
		}
		data = jsoniter.RawMessage(nested)
	}

	return Message{Type: env.Type, Data: data}, nil
}

// EncodeEnvelope builds an outbound frame; payload is JSON-encoded into the
// string-valued data field the feed expects.
func EncodeEnvelope(messageType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal payload: %w", err)
	}

	quoted, err := json.Marshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal data string: %w", err)
	}

	raw, err := json.Marshal(envelope{Type: messageType, Data: jsoniter.RawMessage(quoted)})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal envelope: %w", err)
	}

	return raw, nil
}
