package http_server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type CustomContext struct {
	echo.Context
	RequestID string
}

func CreateReqContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := uuid.NewString()
		ctx := context.WithValue(c.Request().Context(), gologger.ReqIDKey, reqID)
		ctx = logger.WithContext(ctx)
		c.SetRequest(c.Request().WithContext(ctx))
		logger := zerolog.Ctx(ctx)
		logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("reqID", reqID)
		})
		cc := &CustomContext{
			Context:   c,
			RequestID: reqID,
		}
		return next(cc)
	}
}

// Casts to custom context for the handler, so this doesn't have to be done per handler
func ccHandler(h func(*CustomContext) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h(c.(*CustomContext))
	}
}

// ActionError answers a failed seed action with the bare error message and a
// 200, the way rake-style tooling expects to read it.
func (c *CustomContext) ActionError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		zerolog.Ctx(c.Request().Context()).Warn().CallerSkipFrame(1).Msg(err.Error())
	} else {
		zerolog.Ctx(c.Request().Context()).Error().CallerSkipFrame(1).Err(err).Str("path", c.Path()).Msg("seed action failed")
	}
	return c.String(http.StatusOK, err.Error())
}

// seedAction is the error boundary around every seed action: errors and panics
// both end up as a plain text message.
func (s *HTTPServer) seedAction(h func(*CustomContext) error) echo.HandlerFunc {
	return ccHandler(func(c *CustomContext) (err error) {
		defer func() {
			if r := recover(); r != nil {
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				err = c.ActionError(perr)
			}
		}()
		if err := h(c); err != nil {
			return c.ActionError(err)
		}
		return nil
	})
}
