package service

import (
	"context"
	"strconv"
	"strings"

	"nephro-assistant-be/internal/dto"
	"nephro-assistant-be/internal/pkg/logger"
	"nephro-assistant-be/internal/repository/memory"
	"nephro-assistant-be/pkg/agent/clinical"
	"nephro-assistant-be/pkg/agent/receptionist"
	"nephro-assistant-be/pkg/store"
)

const defaultSessionID = "default"

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	LookupPatient(ctx context.Context, name string) (*dto.PatientLookupResponse, error)
}

// chatService is the session orchestrator: it owns the per-session state and
// routes each message to the receptionist or the clinical agent.
type chatService struct {
	sessions     *memory.SessionRepository
	receptionist *receptionist.Agent
	clinical     *clinical.Agent
	logger       logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	receptionistAgent *receptionist.Agent,
	clinicalAgent *clinical.Agent,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:     sessions,
		receptionist: receptionistAgent,
		clinical:     clinicalAgent,
		logger:       log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	session := s.sessions.GetOrCreate(sessionID)
	s.logger.Info("ChatService", "Incoming message", map[string]interface{}{
		"session_id":   sessionID,
		"text":         req.Text,
		"patient_name": req.PatientName,
	})

	if !session.HasPatient() {
		return s.identifyPatient(ctx, session, req), nil
	}

	if s.receptionist.IsMedicalQuery(ctx, req.Text) {
		s.logger.Info("ChatService", "Routing to clinical agent", map[string]interface{}{
			"session_id": sessionID,
			"query":      req.Text,
		})
		result := s.clinical.HandleMedicalQuery(ctx, req.Text, session.CurrentPatient)
		return s.toClinicalResponse(sessionID, result), nil
	}

	s.logger.Info("ChatService", "Non-medical follow-up", map[string]interface{}{"session_id": sessionID})
	return &dto.ChatResponse{Response: "How else may I assist you?", Agent: "receptionist"}, nil
}

// identifyPatient drives the front-desk flow until a record is selected:
// resolve a pending disambiguation menu, otherwise look up a name, otherwise
// greet.
func (s *chatService) identifyPatient(ctx context.Context, session *store.Session, req *dto.ChatRequest) *dto.ChatResponse {
	if session.AwaitingDisambiguation() {
		if choice, err := strconv.Atoi(strings.TrimSpace(req.Text)); err == nil {
			reply := s.receptionist.SelectMatch(session, choice)
			s.sessions.Save(session)
			return &dto.ChatResponse{Response: reply, Agent: "receptionist"}
		}
	}

	name := req.PatientName
	if name == "" {
		name = s.receptionist.ExtractName(req.Text)
	}

	if name == "" {
		s.logger.Info("ChatService", "Greeting user", map[string]interface{}{"session_id": session.ID})
		return &dto.ChatResponse{Response: s.receptionist.Greet(), Agent: "receptionist"}
	}

	s.logger.Info("ChatService", "Looking up patient", map[string]interface{}{
		"session_id": session.ID,
		"name":       name,
	})
	reply := s.receptionist.HandleName(ctx, session, name)
	s.sessions.Save(session)
	return &dto.ChatResponse{Response: reply, Agent: "receptionist"}
}

// toClinicalResponse flattens the agent result for the API: citations keep
// source and text, web sources are reduced to bare links.
func (s *chatService) toClinicalResponse(sessionID string, result clinical.Response) *dto.ChatResponse {
	resp := &dto.ChatResponse{
		Response:   result.Text,
		Agent:      "clinical",
		SourceType: result.SourceType,
	}

	if result.SourceType == "textbook" && len(result.Citations) > 0 {
		s.logger.Info("ChatService", "RAG answer served", map[string]interface{}{
			"session_id": sessionID,
			"citations":  len(result.Citations),
		})
		for _, c := range result.Citations {
			resp.Citations = append(resp.Citations, dto.CitationResponse{Source: c.Source, Text: c.Text})
		}
	}

	if result.SourceType == "web" && len(result.WebSources) > 0 {
		s.logger.Info("ChatService", "Web answer served", map[string]interface{}{
			"session_id": sessionID,
			"sources":    len(result.WebSources),
		})
		for _, src := range result.WebSources {
			resp.Sources = append(resp.Sources, src.Link)
		}
	}

	return resp
}

// LookupPatient answers the direct GET lookup. It runs through the same
// receptionist flow on a throwaway session so the lookup never disturbs chat
// state.
func (s *chatService) LookupPatient(ctx context.Context, name string) (*dto.PatientLookupResponse, error) {
	session := &store.Session{ID: "lookup"}
	reply := s.receptionist.HandleName(ctx, session, name)
	return &dto.PatientLookupResponse{Response: reply}, nil
}
