package reward

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// RemoteSubmitter sends reports to a reward server over a websocket.
// Each submission uses its own short-lived connection.
type RemoteSubmitter struct {
	endpoint string
	player   Player
	dialer   *websocket.Dialer
}

// NewRemoteSubmitter creates a submitter for the server at baseURL
// (http, https, ws or wss). The websocket endpoint is baseURL + "/ws".
func NewRemoteSubmitter(baseURL string, p Player) (*RemoteSubmitter, error) {
	endpoint, err := websocketURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &RemoteSubmitter{
		endpoint: endpoint,
		player:   p,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}, nil
}

// Endpoint returns the websocket URL.
func (s *RemoteSubmitter) Endpoint() string {
	return s.endpoint
}

// SubmitSession sends one SubmitRequest and waits for the SubmitResponse.
func (s *RemoteSubmitter) SubmitSession(ctx context.Context, report progression.SessionReport) (Award, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return Award{}, fmt.Errorf("reward: dial %s: %w", s.endpoint, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	frame, err := EncodeFrame(SubmitRequest{Player: s.player, Report: report})
	if err != nil {
		return Award{}, fmt.Errorf("reward: encode request: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return Award{}, fmt.Errorf("reward: send request: %w", err)
	}

	kind, data, err := conn.ReadMessage()
	if err != nil {
		return Award{}, fmt.Errorf("reward: read response: %w", err)
	}
	if kind != websocket.BinaryMessage {
		return Award{}, fmt.Errorf("reward: unexpected message type %d", kind)
	}

	var resp SubmitResponse
	if err := DecodeFrame(data, &resp); err != nil {
		return Award{}, fmt.Errorf("reward: decode response: %w", err)
	}
	if resp.Error != "" {
		return Award{}, fmt.Errorf("reward: server rejected session: %s", resp.Error)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return resp.Award, nil
}

func websocketURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("reward: invalid server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("reward: server url must use http, https, ws or wss")
	}
	if u.Host == "" {
		return "", errors.New("reward: server url has no host")
	}
	u.Path += "/ws"
	return u.String(), nil
}
