package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/middleware"
	"personal-color-agent-backend/model"
	"personal-color-agent-backend/request"
	"personal-color-agent-backend/response"
	"personal-color-agent-backend/service/chat"
	"personal-color-agent-backend/service/report"
)

func GetReports(c *gin.Context) {
	userID := middleware.UserID(c)
	reports, err := dao.GetReportsByUser(dao.DB, userID)
	if err != nil {
		slog.Error(ErrGetReports.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetReports.Error(),
		})
		return
	}

	var resp response.GetReportsResponse
	for i := range reports {
		resp.Reports = append(resp.Reports, toReportResponse(&reports[i]))
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func GetReport(c *gin.Context) {
	userID := middleware.UserID(c)
	reportUID := c.Param("uid")

	rep, err := dao.GetReportByUID(dao.DB, userID, reportUID)
	if err != nil {
		slog.Error(ErrGetReports.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetReports.Error(),
		})
		return
	}
	if rep == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: toReportResponse(rep),
	})
}

func DeleteReport(c *gin.Context) {
	userID := middleware.UserID(c)
	reportUID := c.Param("uid")

	if err := dao.DeleteReport(dao.DB, userID, reportUID); err != nil {
		slog.Error(ErrDeleteReport.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteReport.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// ForceReport materializes a report for the session's current cycle on
// demand, regardless of the turn threshold. The cycle resets on success
// exactly like an automatic diagnosis.
func ForceReport(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	unlock := Store.LockSession(sessionID)
	defer unlock()

	ctx := c.Request.Context()
	session, turns, err := Store.History(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrSessionNotFound.Error(),
			})
			return
		}
		slog.Error(ErrForceReport.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrForceReport.Error(),
		})
		return
	}
	if session.Status == model.SessionClosed {
		c.AbortWithStatusJSON(http.StatusConflict, response.Response{
			Msg: ErrSessionClosed.Error(),
		})
		return
	}

	rep, err := Materializer.Materialize(ctx, session, turns)
	if err != nil {
		slog.Error(ErrForceReport.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrForceReport.Error(),
		})
		return
	}

	if err := Store.ResetCycle(ctx, sessionID); err != nil {
		slog.Error("Failed to reset diagnosis cycle", "session_id", sessionID, "err", err)
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: toReportResponse(rep),
	})
}

func SubmitSurvey(c *gin.Context) {
	var req request.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	rep, err := Materializer.MaterializeFromSurvey(c.Request.Context(), userID, req.Answers)
	if err != nil {
		if errors.Is(err, report.ErrValidation) {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
				Msg: err.Error(),
			})
			return
		}
		slog.Error(ErrSubmitSurvey.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSubmitSurvey.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: toReportResponse(rep),
	})
}

func GetSurvey(c *gin.Context) {
	var resp response.GetSurveyResponse
	for _, q := range report.SurveyQuestions {
		options := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, opt.Text)
		}
		resp.Questions = append(resp.Questions, response.SurveyQuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Options: options,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func toReportResponse(rep *model.DiagnosisReport) response.ReportResponse {
	return response.ReportResponse{
		ReportUID:        rep.ReportUID,
		CreatedAt:        rep.CreatedAt,
		SessionID:        rep.SessionID,
		Source:           string(rep.Source),
		ResultTone:       rep.ResultTone,
		ResultName:       rep.ResultName,
		Confidence:       rep.Confidence,
		Description:      rep.Description,
		DetailedAnalysis: rep.DetailedAnalysis,
		ColorPalette:     rep.ColorPalette,
		StyleKeywords:    rep.StyleKeywords,
		MakeupTips:       rep.MakeupTips,
	}
}
