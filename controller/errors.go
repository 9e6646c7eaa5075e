package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrStartSession    = errors.New("failed to start a chat session")
	ErrCloseSession    = errors.New("failed to close the chat session")
	ErrGetSessions     = errors.New("failed to get chat sessions")
	ErrGetHistory      = errors.New("failed to get session history")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")

	ErrGenerateWelcome = errors.New("failed to generate welcome message")
	ErrChatTurn        = errors.New("failed to process chat turn")
	ErrModelTimeout    = errors.New("dialogue model timed out")

	ErrGetReports    = errors.New("failed to get diagnosis reports")
	ErrReportPending = errors.New("diagnosis report generation failed, retrying on next turn")
	ErrForceReport   = errors.New("failed to generate diagnosis report")
	ErrDeleteReport  = errors.New("failed to delete diagnosis report")
	ErrSubmitSurvey  = errors.New("failed to submit survey")

	ErrQueryKnowledge   = errors.New("failed to query knowledge")
	ErrRefreshKnowledge = errors.New("failed to refresh knowledge documents")
	ErrGetInfluencers   = errors.New("failed to get influencers")
)
