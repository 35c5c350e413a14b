package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/model"
)

type Server struct {
	addr      string
	upgrader  websocket.Upgrader
	c         *calculator.Calculator
	maxPoints int
}

func NewServer(cfg Config, c *calculator.Calculator) *Server {
	return &Server{
		addr:      cfg.Addr,
		maxPoints: cfg.MaxPoints,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		c: c,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("remote", r.RemoteAddr).Error("upgrade: ", err)
		return
	}
	defer conn.Close()

	hub := NewHub(s.c, s.maxPoints)
	hub.conn = conn
	logger := log.WithFields(log.Fields{
		"hub":    hub.id,
		"remote": r.RemoteAddr,
	})
	logger.Info("连接建立")

	go hub.handleRequest()
	go hub.handleResponse()
	hub.reply <- hub.hello()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read: ", err)
			}
			break
		}
		hub.msg <- msg
	}
	hub.close()
	logger.Info("连接关闭")
}

// Handler 只注册 /ws 一个路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("server started")
	return http.ListenAndServe(s.addr, s.Handler())
}
