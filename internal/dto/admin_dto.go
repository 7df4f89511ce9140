package dto

import "time"

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type LeadSignalQuery struct {
	SessionId string `query:"session_id"`
	Type      string `query:"type"`
	Level     string `query:"level" validate:"omitempty,oneof=cold warm hot"`
	Since     string `query:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Page      int    `query:"page" validate:"min=0"`
	Limit     int    `query:"limit" validate:"min=0,max=200"`
}

type LogListResponse struct {
	Id        string    `json:"id"` // MD5 hash of the log line
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
