// Package socket pushes realtime match and chat events to connected
// clients. Clients join a room per match (and their own user room) and
// receive broadcasts when the event handlers fire.
package socket

import (
	"kesher_server/models"

	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

type Server struct {
	io *socketio.Server
}

func NewServer() *Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(conn socketio.Conn) error {
		zap.S().Infof("🔌 socket connected: %s", conn.ID())
		return nil
	})

	io.OnEvent("/", "join", func(conn socketio.Conn, room string) {
		if room == "" {
			return
		}
		conn.Join(room)
		zap.S().Debugf("🔌 socket %s joined room %s", conn.ID(), room)
	})

	io.OnEvent("/", "leave", func(conn socketio.Conn, room string) {
		conn.Leave(room)
	})

	io.OnDisconnect("/", func(conn socketio.Conn, reason string) {
		zap.S().Debugf("🔌 socket %s disconnected: %s", conn.ID(), reason)
	})

	return &Server{io: io}
}

// IO exposes the underlying server for mounting and lifecycle management.
func (s *Server) IO() *socketio.Server {
	return s.io
}

// BroadcastNewMessage pushes a stored message to the match room.
func (s *Server) BroadcastNewMessage(match models.Match, message models.Message) {
	s.io.BroadcastToRoom("/", match.MatchID, "newMessage", message)
}

// BroadcastNewMatch notifies both participants in their user rooms.
func (s *Server) BroadcastNewMatch(match models.Match) {
	for _, userID := range match.Users {
		s.io.BroadcastToRoom("/", userID, "newMatch", match)
	}
}
