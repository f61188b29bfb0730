package progression

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeActions serializes an action log with msgpack.
func EncodeActions(actions []GameAction) ([]byte, error) {
	data, err := msgpack.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("progression: encode actions: %w", err)
	}
	return data, nil
}

// DecodeActions parses an action log produced by EncodeActions.
func DecodeActions(data []byte) ([]GameAction, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var actions []GameAction
	if err := msgpack.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("progression: decode actions: %w", err)
	}
	return actions, nil
}
