package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/middleware"
	"personal-color-agent-backend/request"
	"personal-color-agent-backend/response"
	"personal-color-agent-backend/service/chat"
	"personal-color-agent-backend/service/report"
	"personal-color-agent-backend/utils"
)

func Welcome(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	result, err := Pipeline.Welcome(c.Request.Context(), userID, sessionID)
	if err != nil {
		abortChatError(c, err, ErrGenerateWelcome)
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: result,
	})
}

func Chat(c *gin.Context) {
	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	result, err := Pipeline.Chat(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		// A committed turn with a failed report still reaches the
		// client; the flag was reverted and a later turn retries
		if result != nil && errors.Is(err, report.ErrMaterializationFailed) {
			c.JSON(http.StatusOK, response.Response{
				Msg:  ErrReportPending.Error(),
				Data: result,
			})
			return
		}
		abortChatError(c, err, ErrChatTurn)
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: result,
	})
}

// ChatStream is the SSE variant of Chat: the turn runs to completion, then
// the pieces stream as discrete events so the frontend can animate them.
func ChatStream(c *gin.Context) {
	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	utils.SetSSEHeaders(c)

	userID := middleware.UserID(c)
	result, err := Pipeline.Chat(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil && !(result != nil && errors.Is(err, report.ErrMaterializationFailed)) {
		slog.Error(ErrChatTurn.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, chatErrorMessage(err))
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	utils.SendSSEMessage(c, utils.EventNarrative, result.Narrative)
	if result.Payload != nil {
		utils.SendSSEMessage(c, utils.EventPayload, result.Payload)
	}
	if result.Report != nil {
		utils.SendSSEMessage(c, utils.EventReport, result.Report)
	}
	utils.SendSSEMessage(c, utils.EventDone, "")
}

func abortChatError(c *gin.Context, err error, fallback error) {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrSessionNotFound.Error(),
		})
	case errors.Is(err, chat.ErrSessionClosed):
		c.AbortWithStatusJSON(http.StatusConflict, response.Response{
			Msg: ErrSessionClosed.Error(),
		})
	case errors.Is(err, chat.ErrAdapterTimeout):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Response{
			Msg: ErrModelTimeout.Error(),
		})
	default:
		slog.Error(fallback.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: fallback.Error(),
		})
	}
}

func chatErrorMessage(err error) string {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return ErrSessionNotFound.Error()
	case errors.Is(err, chat.ErrSessionClosed):
		return ErrSessionClosed.Error()
	case errors.Is(err, chat.ErrAdapterTimeout):
		return ErrModelTimeout.Error()
	}
	return ErrChatTurn.Error()
}
