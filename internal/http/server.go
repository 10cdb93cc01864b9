package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

type Server struct {
	Engine *gin.Engine
	srv    *http.Server
}

func NewServer(scfg ServerConfig, rcfg RouterConfig) *Server {
	engine := NewRouter(rcfg)
	if scfg.Addr == "" {
		scfg.Addr = ":8080"
	}
	if scfg.ReadHeaderTimeout <= 0 {
		scfg.ReadHeaderTimeout = 10 * time.Second
	}
	return &Server{
		Engine: engine,
		srv: &http.Server{
			Addr:              scfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: scfg.ReadHeaderTimeout,
			WriteTimeout:      scfg.WriteTimeout,
			IdleTimeout:       scfg.IdleTimeout,
		},
	}
}

func (s *Server) Addr() string { return s.srv.Addr }

// Run blocks until the listener stops. A graceful Shutdown is not an error.
func (s *Server) Run() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
