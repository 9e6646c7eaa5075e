package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/request"
	"personal-color-agent-backend/response"
	"personal-color-agent-backend/service/knowledge"
	"personal-color-agent-backend/service/mq"
)

func QueryKnowledge(c *gin.Context) {
	var req request.KnowledgeQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	result, err := Knowledge.Query(c.Request.Context(), req.Query, knowledge.Route(req.Route))
	if err != nil {
		if errors.Is(err, knowledge.ErrKnowledgeUnavailable) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Response{
				Msg: knowledge.ErrKnowledgeUnavailable.Error(),
			})
			return
		}
		slog.Error(ErrQueryKnowledge.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrQueryKnowledge.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.KnowledgeResponse{
			Answer:   result.Answer,
			Sources:  result.Sources,
			Metadata: result.Metadata,
		},
	})
}

// RefreshKnowledge refreshes the trend corpus. With an object name the
// request is published to MQ so it takes the same fetch-and-resync path as
// crawler-announced documents; without one only the local cache is
// re-scanned, covering files dropped into the trend directory by hand.
func RefreshKnowledge(c *gin.Context) {
	var req request.RefreshKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if req.ObjectName != "" {
		err := mq.SendMessage(c.Request.Context(), &mq.Message{
			Topic:   mq.TopicTrendDocs,
			Tag:     mq.TagRefresh,
			Payload: mq.RefreshMessage{ObjectName: req.ObjectName},
		})
		if err != nil {
			slog.Error(ErrRefreshKnowledge.Error(), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrRefreshKnowledge.Error(),
			})
			return
		}
		c.JSON(http.StatusAccepted, response.Response{})
		return
	}

	if err := ResyncTrends(); err != nil {
		slog.Error(ErrRefreshKnowledge.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrRefreshKnowledge.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func GetInfluencers(c *gin.Context) {
	influencers, err := dao.GetInfluencers(dao.DB)
	if err != nil {
		slog.Error(ErrGetInfluencers.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetInfluencers.Error(),
		})
		return
	}

	var resp response.GetInfluencersResponse
	for _, inf := range influencers {
		resp.Influencers = append(resp.Influencers, response.InfluencerResponse{
			Slug:       inf.Slug,
			Name:       inf.Name,
			Greeting:   inf.Greeting,
			Emoji:      inf.Emoji,
			ColorTheme: inf.ColorTheme,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}
