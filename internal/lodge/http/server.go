// Package http serves a read-only JSON view of the lodge.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
	"github.com/sjzar/trophylodge/internal/lodge/monitor"
	"github.com/sjzar/trophylodge/internal/lodge/store"
)

// Lodge is the read side of the store.
type Lodge interface {
	ListTrophies(ctx context.Context, f store.Filter) ([]model.Trophy, error)
	ListGrinds(ctx context.Context) ([]model.Grind, error)
}

type StatusSource interface {
	Snapshot() monitor.Snapshot
}

type Server struct {
	addr   string
	lodge  Lodge
	status StatusSource
	router *gin.Engine
	server *http.Server
}

func NewServer(addr string, lodge Lodge, status StatusSource) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{addr: addr, lodge: lodge, status: status, router: router}
	s.initRouter()
	return s
}

func (s *Server) initRouter() {
	api := s.router.Group("/api/v1")
	api.GET("/status", s.handleStatus)
	api.GET("/trophies", s.handleTrophies)
	api.GET("/grinds", s.handleGrinds)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Err(err).Str("addr", s.addr).Msg("http server failed")
		}
	}()
	log.Info().Str("addr", s.addr).Msg("http server started")
	return nil
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status.Snapshot())
}

func (s *Server) handleTrophies(c *gin.Context) {
	f := store.Filter{}
	if v := c.Query("species"); v != "" {
		if f.Species = model.ParseSpeciesName(v); f.Species == model.SpeciesUnknown {
			errors.Err(c, errors.InvalidArg("species"))
			return
		}
	}
	if v := c.Query("reserve"); v != "" {
		if f.Reserve = model.ParseReserveName(v); f.Reserve == model.ReserveUnknown {
			errors.Err(c, errors.InvalidArg("reserve"))
			return
		}
	}
	if v := c.Query("rating"); v != "" {
		var r model.Rating
		if err := r.UnmarshalText([]byte(v)); err != nil {
			errors.Err(c, errors.InvalidArg("rating"))
			return
		}
		f.Rating = &r
	}
	sort, err := store.ParseSortBy(c.Query("sort"))
	if err != nil {
		errors.Err(c, err)
		return
	}
	f.Sort = sort
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errors.Err(c, errors.InvalidArg("limit"))
			return
		}
		f.Limit = n
	}

	trophies, err := s.lodge.ListTrophies(c.Request.Context(), f)
	if err != nil {
		errors.Err(c, err)
		return
	}
	if trophies == nil {
		trophies = []model.Trophy{}
	}
	c.JSON(http.StatusOK, trophies)
}

func (s *Server) handleGrinds(c *gin.Context) {
	grinds, err := s.lodge.ListGrinds(c.Request.Context())
	if err != nil {
		errors.Err(c, err)
		return
	}
	if grinds == nil {
		grinds = []model.Grind{}
	}
	c.JSON(http.StatusOK, grinds)
}
