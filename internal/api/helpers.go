package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/gifasm/pkg/animate"
	"github.com/samcharles93/gifasm/pkg/gif"
)

const mimeGIF = "image/gif"

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

// writeAssembleError maps assembly failures onto HTTP statuses. Structural
// problems in a frame are 422 and name the offending frame.
func writeAssembleError(c *echo.Context, err error) error {
	var fe *gif.FrameError
	switch {
	case errors.As(err, &fe):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error": ResponseError{
				Message: err.Error(),
				Type:    "invalid_frame_error",
				Param:   fmt.Sprintf("frames[%d]", fe.Index),
				Code:    frameErrorCode(err),
			},
		})
	case errors.Is(err, ErrInvalidRequest):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), requestParam(err))
	case errors.Is(err, animate.ErrNoFrames),
		errors.Is(err, animate.ErrDelayCount),
		errors.Is(err, animate.ErrInvalidDisposal):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}
}

func frameErrorCode(err error) string {
	switch {
	case errors.Is(err, gif.ErrAlreadyAnimated):
		return "already_animated"
	case errors.Is(err, gif.ErrUnexpectedBlock):
		return "unexpected_block"
	case errors.Is(err, gif.ErrInvalidFormat):
		return "invalid_format"
	default:
		return ""
	}
}

// writeGIF sends raw GIF bytes.
func writeGIF(c *echo.Context, data []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, mimeGIF)
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	res.WriteHeader(http.StatusOK)
	_, err := res.Write(data)
	return err
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func boolParam(c *echo.Context, name string) bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	return err == nil && v
}
