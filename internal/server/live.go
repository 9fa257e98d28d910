package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"watchchart/internal/models"
)

const liveWriteTimeout = 5 * time.Second

var liveUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// liveFrame is one push on the live socket.
type liveFrame struct {
	Status int         `json:"status"`
	View   models.View `json:"view"`
}

// handleLive streams the view for the query's parameters, re-running the
// load on every refresh tick until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := s.requestLocation(q)
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	push := func() error {
		view, status := s.loadView(ctx, q, loc)
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		return conn.WriteJSON(liveFrame{Status: status, View: view})
	}
	if err := push(); err != nil {
		return
	}

	ticker := time.NewTicker(s.liveRefresh)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := push(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
