package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"nephro-assistant-be/internal/dto"
	"nephro-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubChatService struct {
	chatRes   *dto.ChatResponse
	lookupRes *dto.PatientLookupResponse
	lastReq   *dto.ChatRequest
}

func (s *stubChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	s.lastReq = req
	return s.chatRes, nil
}

func (s *stubChatService) LookupPatient(ctx context.Context, name string) (*dto.PatientLookupResponse, error) {
	return s.lookupRes, nil
}

func newTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	NewPatientController(svc).RegisterRoutes(api)
	return app
}

func TestChatEndpoint(t *testing.T) {
	svc := &stubChatService{
		chatRes: &dto.ChatResponse{Response: "How else may I assist you?", Agent: "receptionist"},
	}
	app := newTestApp(svc)

	body, _ := json.Marshal(dto.ChatRequest{Text: "thanks", SessionID: "s1"})
	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    dto.ChatResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "receptionist", envelope.Data.Agent)
	assert.Equal(t, "How else may I assist you?", envelope.Data.Response)

	assert.NotNil(t, svc.lastReq)
	assert.Equal(t, "s1", svc.lastReq.SessionID)
}

func TestChatEndpointRejectsMissingText(t *testing.T) {
	svc := &stubChatService{chatRes: &dto.ChatResponse{}}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope serverutils.Response
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.False(t, envelope.Success)
	assert.Nil(t, svc.lastReq)
}

func TestPatientLookupEndpoint(t *testing.T) {
	svc := &stubChatService{
		lookupRes: &dto.PatientLookupResponse{Response: "📄 Found your discharge summary:"},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/patient/v1/John", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool                      `json:"success"`
		Data    dto.PatientLookupResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Data.Response, "discharge summary")
}
