package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
)

// AIAssist wraps the style-recommendation microservice. It lives on its own
// origin, so it takes its own base Client.
type AIAssist struct {
	client *Client
}

func NewAIAssist(client *Client) *AIAssist {
	return &AIAssist{client: client}
}

type chatRequest struct {
	UserMessage           string `json:"userMessage"`
	RecommendationContext string `json:"recommendationContext,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat sends a user message (optionally with recommendation context) and
// returns the assistant's reply.
func (a *AIAssist) Chat(ctx context.Context, message, recommendation string) (string, error) {
	if message == "" {
		return "", Precondition("message is required")
	}
	var out chatResponse
	req := chatRequest{UserMessage: message, RecommendationContext: recommendation}
	if err := a.client.do(ctx, http.MethodPost, "/api/chat/ask", nil, req, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

type HaircutAnalysis struct {
	RecommendedStyle string `json:"recommendedStyle"`
	ConfidenceLevel  string `json:"confidenceLevel"`
	AnalysisReport   string `json:"analysisReport"`
}

// AnalyzeImage uploads a photo for haircut style analysis.
func (a *AIAssist) AnalyzeImage(ctx context.Context, filename string, image io.Reader, userID string) (*HaircutAnalysis, error) {
	if userID == "" {
		userID = "anonymous"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := mw.WriteField("userId", userID); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out HaircutAnalysis
	if err := a.client.doMultipart(ctx, http.MethodPost, "/api/haircut/analyze", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
