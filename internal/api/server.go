package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
)

type Server struct {
	store   *AnimationStore
	service *AssembleService
	clock   func() time.Time
	maxBody int64
}

func NewServer(store *AnimationStore, service *AssembleService) *Server {
	if store == nil {
		store = NewAnimationStore()
	}
	return &Server{
		store:   store,
		service: service,
		clock:   time.Now,
	}
}

// SetBodyLimit caps request bodies at n bytes; n <= 0 removes the cap.
func (s *Server) SetBodyLimit(n int64) {
	s.maxBody = n
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/animations", s.handleCreateAnimation)
	e.GET("/v1/animations/:id", s.handleGetAnimation)
	e.GET("/v1/animations/:id/info", s.handleAnimationInfo)
	e.DELETE("/v1/animations/:id", s.handleDeleteAnimation)
}

// handleCreateAnimation assembles the posted frames. With ?inline=true the
// GIF is returned directly and nothing is stored.
func (s *Server) handleCreateAnimation(c *echo.Context) error {
	if s.service == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "assemble service not configured", "")
	}
	body := c.Request().Body
	if s.maxBody > 0 {
		body = http.MaxBytesReader(c.Response(), body, s.maxBody)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body too large", "")
		}
		return writeBadRequest(c, err.Error())
	}
	req, err := decodeJSON[CreateAnimationRequest](bytes.NewReader(raw))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	resp, data, err := s.service.Assemble(c.Request().Context(), &req, s.clock())
	if err != nil {
		return writeAssembleError(c, err)
	}
	if boolParam(c, "inline") {
		return writeGIF(c, data)
	}
	resp = s.store.Save(resp, data)
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleGetAnimation(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "animation not found")
	}
	return writeGIF(c, rec.Data)
}

func (s *Server) handleAnimationInfo(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "animation not found")
	}
	return c.JSON(http.StatusOK, rec.Response)
}

func (s *Server) handleDeleteAnimation(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "animation not found")
	}
	return c.JSON(http.StatusOK, DeleteAnimationResponse{
		ID:      id,
		Object:  "animation",
		Deleted: true,
	})
}
