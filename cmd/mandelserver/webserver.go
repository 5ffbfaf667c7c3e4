package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

//go:embed static
var staticFiles embed.FS

// webServer creates a server serving the embedded explorer page and the
// websocket endpoint at /ws.
func webServer(cfg serverConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.addr,
		Handler:           newMux(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func newMux(cfg serverConfig) *http.ServeMux {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg))
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// websocketHandler upgrades the connection and runs one explorer session on it.
func websocketHandler(cfg serverConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict to the served host once deployed behind a proxy
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		s := newSession(c, cfg)
		err = s.run(r.Context())

		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			log.Printf("client %s disconnected", r.RemoteAddr)
			return
		}
		if err != nil {
			log.Printf("err: session %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}
