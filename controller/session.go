package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/middleware"
	"personal-color-agent-backend/request"
	"personal-color-agent-backend/response"
	"personal-color-agent-backend/service/chat"
)

func StartSession(c *gin.Context) {
	var req request.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	result, err := Store.Start(c.Request.Context(), userID, req.Influencer)
	if err != nil {
		slog.Error(ErrStartSession.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrStartSession.Error(),
		})
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, response.Response{
		Data: response.StartSessionResponse{
			SessionID: result.SessionID,
			Reused:    result.Reused,
			UserTurns: result.UserTurns,
		},
	})
}

func CloseSession(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	endedAt, err := Store.Close(c.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrSessionNotFound.Error(),
			})
			return
		}
		slog.Error(ErrCloseSession.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCloseSession.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.CloseSessionResponse{
			SessionID: sessionID,
			EndedAt:   endedAt,
		},
	})
}

func GetSessions(c *gin.Context) {
	userID := middleware.UserID(c)
	sessions, err := dao.GetSessionsByUser(dao.DB, userID)
	if err != nil {
		slog.Error(ErrGetSessions.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetSessions.Error(),
		})
		return
	}

	var resp response.GetSessionsResponse
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, response.SessionResponse{
			SessionID:  s.ID,
			Influencer: s.Influencer,
			Status:     string(s.Status),
			UserTurns:  s.UserTurns,
			CreatedAt:  s.CreatedAt,
			EndedAt:    s.EndedAt,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetHistory(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	session, turns, err := Store.History(c.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrSessionNotFound.Error(),
			})
			return
		}
		slog.Error(ErrGetHistory.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetHistory.Error(),
		})
		return
	}

	resp := response.GetHistoryResponse{
		SessionID: session.ID,
		Status:    string(session.Status),
		UserTurns: session.UserTurns,
	}
	for _, t := range turns {
		payload := t.DecodePayload()
		emotion := "neutral"
		if payload != nil {
			emotion = payload.Emotion
		}
		resp.Turns = append(resp.Turns, response.TurnResponse{
			Seq:          t.Seq,
			CreatedAt:    t.CreatedAt,
			UserText:     t.UserText,
			Narrative:    t.Narrative,
			Payload:      payload,
			Styling:      t.Styling,
			EmotionAsset: chat.EmotionAsset(emotion),
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return 0, false
	}
	return uint(id), true
}
