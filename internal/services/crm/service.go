package crm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/repository"
)

type LeadRepository interface {
	CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error)
	UpdateLead(ctx context.Context, lead domain.Lead) error
	AddActivity(ctx context.Context, activity domain.LeadActivity) (uuid.UUID, error)
	PipelineByAgent(ctx context.Context, agentID uuid.UUID, hotThreshold int32) (domain.PipelineSummary, error)
}

type Service struct {
	log   *slog.Logger
	leads LeadRepository
}

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidStatus    = errors.New("unknown lead status")
)

func New(log *slog.Logger, leads LeadRepository) *Service {
	return &Service{log: log, leads: leads}
}

// HotLeadThreshold — лид считается горячим строго выше этого балла.
const HotLeadThreshold = 70

// Слагаемые балла качества лида.
const (
	leadBaseScore     = 30
	budgetBonus       = 15
	timelineBonus     = 10
	phoneBonus        = 15
	referralBonus     = 10
	activityBonus     = 5
	leadScoreCap      = 100
	urgentTimelineMax = 6
)

// Score считает балл качества лида: база плюс бонусы за бюджет,
// срочность, контактность, источник и зафиксированные касания.
func Score(lead domain.Lead) int32 {
	score := int32(leadBaseScore)

	if lead.Budget != nil && *lead.Budget > 0 {
		score += budgetBonus
	}
	if lead.TimelineMonths != nil && *lead.TimelineMonths > 0 && *lead.TimelineMonths <= urgentTimelineMax {
		score += timelineBonus
	}
	if lead.Phone != nil && *lead.Phone != "" {
		score += phoneBonus
	}
	if lead.Source == domain.LeadSourceReferral {
		score += referralBonus
	}
	score += lead.ActivityCount * activityBonus

	if score > leadScoreCap {
		score = leadScoreCap
	}
	return score
}

// CreateLead — создаёт лида агента с вычисленным баллом качества.
func (s *Service) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	const op = "crm.Service.CreateLead"

	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if lead.Source == "" {
		lead.Source = domain.LeadSourceOther
	}
	lead.ActivityCount = 0
	lead.Score = Score(lead)

	id, err := s.leads.CreateLead(ctx, lead)
	if err != nil {
		s.log.Error("failed to create lead", sl.Err(err))
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}
	lead.ID = id

	s.log.Info("lead created",
		slog.String("lead_id", id.String()),
		slog.Int("score", int(lead.Score)),
	)
	return lead, nil
}

// GetLead — лид по ID, доступен только своему агенту.
func (s *Service) GetLead(ctx context.Context, id, agentID uuid.UUID) (domain.Lead, error) {
	const op = "crm.Service.GetLead"

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return domain.Lead{}, fmt.Errorf("%s: %w", op, ErrLeadNotFound)
		}
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}
	if lead.AgentID != agentID {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, ErrLeadNotFound)
	}

	return lead, nil
}

// ListLeads — лиды агента по фильтру с пагинацией.
func (s *Service) ListLeads(ctx context.Context, agentID uuid.UUID, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
	const op = "crm.Service.ListLeads"

	filter.AgentID = &agentID
	result, err := s.leads.ListLeads(ctx, filter)
	if err != nil {
		s.log.Error("failed to list leads", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateStatus — переводит лида на новую стадию воронки.
func (s *Service) UpdateStatus(ctx context.Context, id, agentID uuid.UUID, status domain.LeadStatus, notes *string) (domain.Lead, error) {
	const op = "crm.Service.UpdateStatus"

	switch status {
	case domain.LeadStatusNew, domain.LeadStatusContacted, domain.LeadStatusQualified,
		domain.LeadStatusViewing, domain.LeadStatusNegotiating,
		domain.LeadStatusClosed, domain.LeadStatusLost:
	default:
		return domain.Lead{}, fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, status)
	}

	lead, err := s.GetLead(ctx, id, agentID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	lead.Status = status
	if notes != nil {
		lead.Notes = notes
	}

	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		s.log.Error("failed to update lead", sl.Err(err))
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("lead status updated",
		slog.String("lead_id", id.String()),
		slog.String("status", status.String()),
	)
	return lead, nil
}

// AddActivity — фиксирует касание по лиду и пересчитывает его балл.
func (s *Service) AddActivity(ctx context.Context, leadID, agentID uuid.UUID, activityType string, note *string) (domain.Lead, error) {
	const op = "crm.Service.AddActivity"

	lead, err := s.GetLead(ctx, leadID, agentID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.leads.AddActivity(ctx, domain.LeadActivity{
		LeadID: leadID,
		Type:   activityType,
		Note:   note,
	}); err != nil {
		s.log.Error("failed to add lead activity", sl.Err(err))
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	lead.ActivityCount++
	lead.Score = Score(lead)

	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("lead activity recorded",
		slog.String("lead_id", leadID.String()),
		slog.String("type", activityType),
		slog.Int("score", int(lead.Score)),
	)
	return lead, nil
}

// Pipeline — сводка воронки агента.
func (s *Service) Pipeline(ctx context.Context, agentID uuid.UUID) (domain.PipelineSummary, error) {
	const op = "crm.Service.Pipeline"

	summary, err := s.leads.PipelineByAgent(ctx, agentID, HotLeadThreshold)
	if err != nil {
		s.log.Error("failed to build pipeline summary", sl.Err(err))
		return domain.PipelineSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return summary, nil
}
