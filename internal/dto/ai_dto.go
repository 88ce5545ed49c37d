package dto

import "github.com/google/uuid"

type AnalyzeRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
}

type EmailDraftRequest struct {
	ApplicationID   uuid.UUID `json:"application_id"`
	EmailType       string    `json:"email_type"`
	SendImmediately bool      `json:"send_immediately"`
}

type ChatQueryRequest struct {
	Query string `json:"query"`
}

type ChatAnswerResponse struct {
	Answer string `json:"answer"`
}
