package crm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
)

type mockLeadRepository struct {
	CreateLeadFunc      func(ctx context.Context, lead domain.Lead) (uuid.UUID, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	ListLeadsFunc       func(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error)
	UpdateLeadFunc      func(ctx context.Context, lead domain.Lead) error
	AddActivityFunc     func(ctx context.Context, activity domain.LeadActivity) (uuid.UUID, error)
	PipelineByAgentFunc func(ctx context.Context, agentID uuid.UUID, hotThreshold int32) (domain.PipelineSummary, error)
}

func (m *mockLeadRepository) CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error) {
	return m.CreateLeadFunc(ctx, lead)
}

func (m *mockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockLeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
	return m.ListLeadsFunc(ctx, filter)
}

func (m *mockLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	return m.UpdateLeadFunc(ctx, lead)
}

func (m *mockLeadRepository) AddActivity(ctx context.Context, activity domain.LeadActivity) (uuid.UUID, error) {
	return m.AddActivityFunc(ctx, activity)
}

func (m *mockLeadRepository) PipelineByAgent(ctx context.Context, agentID uuid.UUID, hotThreshold int32) (domain.PipelineSummary, error) {
	return m.PipelineByAgentFunc(ctx, agentID, hotThreshold)
}

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		lead domain.Lead
		want int32
	}{
		{
			name: "bare lead gets the base score",
			lead: domain.Lead{},
			want: 30,
		},
		{
			name: "budget adds 15",
			lead: domain.Lead{Budget: ptr(int64(8000000))},
			want: 45,
		},
		{
			name: "urgent timeline adds 10",
			lead: domain.Lead{TimelineMonths: ptr(int32(3))},
			want: 40,
		},
		{
			name: "distant timeline adds nothing",
			lead: domain.Lead{TimelineMonths: ptr(int32(18))},
			want: 30,
		},
		{
			name: "phone adds 15",
			lead: domain.Lead{Phone: ptr("+919900112233")},
			want: 45,
		},
		{
			name: "referral source adds 10",
			lead: domain.Lead{Source: domain.LeadSourceReferral},
			want: 40,
		},
		{
			name: "each activity adds 5",
			lead: domain.Lead{ActivityCount: 3},
			want: 45,
		},
		{
			name: "full profile caps at 100",
			lead: domain.Lead{
				Budget:         ptr(int64(12000000)),
				TimelineMonths: ptr(int32(2)),
				Phone:          ptr("+919900112233"),
				Source:         domain.LeadSourceReferral,
				ActivityCount:  10,
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.lead); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateLead_ComputesScore(t *testing.T) {
	leadID := uuid.New()

	var persisted domain.Lead
	repo := &mockLeadRepository{
		CreateLeadFunc: func(ctx context.Context, lead domain.Lead) (uuid.UUID, error) {
			persisted = lead
			return leadID, nil
		},
	}
	svc := New(testLogger(), repo)

	lead, err := svc.CreateLead(context.Background(), domain.Lead{
		AgentID: uuid.New(),
		Name:    "Priya Sharma",
		Phone:   ptr("+919900112233"),
		Source:  domain.LeadSourceReferral,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30 базовых + 15 телефон + 10 рекомендация
	if persisted.Score != 55 {
		t.Errorf("persisted score = %d, want 55", persisted.Score)
	}
	if persisted.Status != domain.LeadStatusNew {
		t.Errorf("status = %s, want NEW", persisted.Status)
	}
	if lead.ID != leadID {
		t.Errorf("lead id = %s, want %s", lead.ID, leadID)
	}
}

func TestAddActivity_RecomputesScore(t *testing.T) {
	leadID := uuid.New()
	agentID := uuid.New()

	var updated domain.Lead
	repo := &mockLeadRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
			return domain.Lead{ID: leadID, AgentID: agentID, ActivityCount: 1, Score: 35}, nil
		},
		AddActivityFunc: func(ctx context.Context, activity domain.LeadActivity) (uuid.UUID, error) {
			if activity.Type != "VIEWING" {
				t.Errorf("activity type = %q, want VIEWING", activity.Type)
			}
			return uuid.New(), nil
		},
		UpdateLeadFunc: func(ctx context.Context, lead domain.Lead) error {
			updated = lead
			return nil
		},
	}
	svc := New(testLogger(), repo)

	lead, err := svc.AddActivity(context.Background(), leadID, agentID, "VIEWING", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.ActivityCount != 2 {
		t.Errorf("activity count = %d, want 2", lead.ActivityCount)
	}
	// 30 базовых + 2 касания по 5
	if updated.Score != 40 {
		t.Errorf("recomputed score = %d, want 40", updated.Score)
	}
}

func TestGetLead_ForeignAgent(t *testing.T) {
	leadID := uuid.New()

	repo := &mockLeadRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
			return domain.Lead{ID: leadID, AgentID: uuid.New()}, nil
		},
	}
	svc := New(testLogger(), repo)

	_, err := svc.GetLead(context.Background(), leadID, uuid.New())
	if !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound for foreign agent, got %v", err)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := New(testLogger(), &mockLeadRepository{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), domain.LeadStatus("FROZEN"), nil)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListLeads_ScopesToAgent(t *testing.T) {
	agentID := uuid.New()

	repo := &mockLeadRepository{
		ListLeadsFunc: func(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
			if filter.AgentID == nil || *filter.AgentID != agentID {
				t.Errorf("filter agent = %v, want %s", filter.AgentID, agentID)
			}
			return &domain.PaginatedResult[domain.Lead]{}, nil
		},
	}
	svc := New(testLogger(), repo)

	if _, err := svc.ListLeads(context.Background(), agentID, domain.LeadFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPipeline_UsesHotThreshold(t *testing.T) {
	agentID := uuid.New()

	repo := &mockLeadRepository{
		PipelineByAgentFunc: func(ctx context.Context, id uuid.UUID, hotThreshold int32) (domain.PipelineSummary, error) {
			if hotThreshold != HotLeadThreshold {
				t.Errorf("threshold = %d, want %d", hotThreshold, HotLeadThreshold)
			}
			return domain.PipelineSummary{AgentID: id, Total: 4, HotLeads: 1}, nil
		},
	}
	svc := New(testLogger(), repo)

	summary, err := svc.Pipeline(context.Background(), agentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 4 || summary.HotLeads != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
