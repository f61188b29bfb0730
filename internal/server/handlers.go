package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ClaimResponse is the body of POST /api/players/{id}/claim.
type ClaimResponse struct {
	Claimed       bool                `json:"claimed"`
	Profile       progression.Profile `json:"profile"`
	NextInSeconds float64             `json:"next_in_seconds"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.TopPlayers(r.Context(), queryLimit(r))
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	if entries == nil {
		entries = []progression.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, reward.LeaderboardResponse{
		Entries:     entries,
		GeneratedAt: time.Now().UTC(),
	})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, err := s.store.LoadPlayer(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		s.logger.Error("player query failed", "player", id, "err", err)
		writeError(w, http.StatusInternalServerError, "player unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	recs, err := s.store.RecentSessions(r.Context(), id, queryLimit(r))
	if err != nil {
		s.logger.Error("session query failed", "player", id, "err", err)
		writeError(w, http.StatusInternalServerError, "sessions unavailable")
		return
	}
	if recs == nil {
		recs = []storage.SessionRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.store.LoadPlayer(r.Context(), id); errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}

	p, claimed, err := s.ledger.Claim(r.Context(), reward.Player{ID: id})
	if err != nil {
		s.logger.Error("claim failed", "player", id, "err", err)
		writeError(w, http.StatusInternalServerError, "claim failed")
		return
	}
	writeJSON(w, http.StatusOK, ClaimResponse{
		Claimed:       claimed,
		Profile:       p,
		NextInSeconds: p.NextClaimIn(time.Now()).Seconds(),
	})
}

// handleWebsocket serves one connection; every binary frame is a
// SubmitRequest answered by exactly one SubmitResponse.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxFrameBytes)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read failed", "err", err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}

		resp := s.submit(r, data)
		out, err := reward.EncodeFrame(resp)
		if err != nil {
			s.logger.Error("encode response failed", "err", err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
			s.logger.Warn("websocket write failed", "err", err)
			return
		}
	}
}

func (s *Server) submit(r *http.Request, data []byte) reward.SubmitResponse {
	var req reward.SubmitRequest
	if err := reward.DecodeFrame(data, &req); err != nil {
		return reward.SubmitResponse{Error: "malformed request"}
	}
	award, err := s.ledger.Settle(r.Context(), req.Player, req.Report)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		return reward.SubmitResponse{Error: "session already submitted"}
	case err != nil:
		s.logger.Warn("session rejected", "session", req.Report.SessionID, "player", req.Player.ID, "err", err)
		return reward.SubmitResponse{Error: err.Error()}
	}
	return reward.SubmitResponse{Award: award}
}
