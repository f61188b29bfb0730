package reward

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// SubmitRequest is the binary websocket frame sent by a client.
type SubmitRequest struct {
	Player Player                    `msgpack:"player"`
	Report progression.SessionReport `msgpack:"report"`
}

// SubmitResponse is the server reply to a SubmitRequest.
type SubmitResponse struct {
	Award Award  `msgpack:"award"`
	Error string `msgpack:"error,omitempty"`
}

// LeaderboardResponse is the JSON body of GET /api/leaderboard.
type LeaderboardResponse struct {
	Entries     []progression.LeaderboardEntry `json:"entries"`
	GeneratedAt time.Time                      `json:"generated_at"`
}

// EncodeFrame serializes a websocket frame.
func EncodeFrame(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// DecodeFrame parses a websocket frame into v.
func DecodeFrame(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
