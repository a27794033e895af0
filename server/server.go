package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aiweb/logger"

	"github.com/google/uuid"
)

const shutdownGrace = 10 * time.Second

type Server struct {
	StartTime time.Time
	Svr       *http.Server
	log       *logger.Logger
}

func NewServer(conf *Conf, handler http.Handler) *Server {
	return &Server{
		StartTime: time.Now().UTC(),
		log:       logger.NewLogger("Server", uuid.NewString()),
		Svr: &http.Server{
			Handler:      handler,
			Addr:         conf.Addr,
			ReadTimeout:  conf.TimeoutRead,
			WriteTimeout: conf.TimeoutWrite,
			IdleTimeout:  conf.TimeoutIdle,
		},
	}
}

func secondsToTimeStr(seconds float64) string {
	duration := time.Duration(int64(seconds)) * time.Second
	timeValue := time.Time{}.Add(duration)
	return timeValue.Format("15:04:05")
}

// returns the current run time of the server
// as a HH:MM:SS formatted string.
func (s *Server) RunTime() string {
	return secondsToTimeStr(time.Since(s.StartTime).Seconds())
}

// forcibly shuts down server and returns total run time.
func (s *Server) Shutdown() (string, error) {
	if err := s.Svr.Close(); err != nil && err != http.ErrServerClosed {
		return "0", fmt.Errorf("server shutdown failed: %v", err)
	}
	return s.RunTime(), nil
}

// starts a server that can be shut down via ctrl-c
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens on the configured address until ctx is done, then drains
// open requests for up to ten seconds before forcing the listener closed.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Svr.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Svr.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info(fmt.Sprintf("starting server on %s...", ln.Addr()))
		errc <- s.Svr.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.Svr.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("shutdown timed out. forcing exit.")
		if _, err := s.Shutdown(); err != nil {
			return err
		}
	}
	s.log.Info(fmt.Sprintf("server run time: %s", s.RunTime()))
	return nil
}
