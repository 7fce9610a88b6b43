package lead_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/repository"
)

type LeadRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewLeadRepository(db *pgxpool.Pool, log *slog.Logger) *LeadRepository {
	return &LeadRepository{db: db, log: log}
}

// CreateLead — создаёт нового лида.
func (r *LeadRepository) CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error) {
	const op = "LeadRepository.CreateLead"

	query := `
		INSERT INTO leads (
			agent_id, name, phone, email, budget, timeline_months,
			source, status, score, activity_count, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING lead_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		lead.AgentID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Budget,
		lead.TimelineMonths,
		string(lead.Source),
		lead.Status.String(),
		lead.Score,
		lead.ActivityCount,
		lead.Notes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

const leadColumns = `
	lead_id, agent_id, name, phone, email, budget, timeline_months,
	source, status, score, activity_count, notes, created_at, updated_at
`

func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	var sourceStr, statusStr string
	err := row.Scan(
		&l.ID, &l.AgentID, &l.Name, &l.Phone, &l.Email, &l.Budget, &l.TimelineMonths,
		&sourceStr, &statusStr, &l.Score, &l.ActivityCount, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	l.Source = domain.LeadSource(sourceStr)
	l.Status = domain.LeadStatus(statusStr)
	return l, nil
}

// GetByID — получает лида по ID.
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	const op = "LeadRepository.GetByID"

	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`

	l, err := scanLead(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, fmt.Errorf("%s: %w", op, repository.ErrLeadNotFound)
		}
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// ListLeads — возвращает лидов по фильтру с пагинацией.
func (r *LeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
	const op = "LeadRepository.ListLeads"

	pageSize := int(domain.DefaultPageSize)
	var cursor *domain.PageCursor

	if filter.Pagination != nil {
		pageSize = int(domain.NormalizePageSize(filter.Pagination.PageSize))
		if filter.Pagination.PageToken != "" {
			var err error
			cursor, err = domain.DecodePageCursor(filter.Pagination.PageToken)
			if err != nil {
				r.log.Warn("failed to decode page cursor, starting from beginning", "error", err)
				cursor = nil
			}
		}
	}

	whereClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if filter.AgentID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("agent_id = $%d", paramCount))
		params = append(params, *filter.AgentID)
		paramCount++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, (*filter.Status).String())
		paramCount++
	}
	if filter.MinScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("score >= $%d", paramCount))
		params = append(params, *filter.MinScore)
		paramCount++
	}

	countQuery := "SELECT COUNT(*) FROM leads"
	if len(whereClauses) > 0 {
		countQuery += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int32
	if err := r.db.QueryRow(ctx, countQuery, params...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("%s: count failed: %w", op, err)
	}

	if cursor != nil {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(created_at, lead_id) < ($%d, $%d)", paramCount, paramCount+1))
		params = append(params, cursor.LastCreatedAt, cursor.LastID)
		paramCount += 2
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, lead_id DESC LIMIT $%d", paramCount)
	params = append(params, pageSize+1)

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	hasMore := len(leads) > pageSize
	if hasMore {
		leads = leads[:pageSize]
	}

	var nextPageToken string
	if hasMore && len(leads) > 0 {
		last := leads[len(leads)-1]
		nextPageToken = (&domain.PageCursor{LastID: last.ID, LastCreatedAt: last.CreatedAt}).Encode()
	}

	return &domain.PaginatedResult[domain.Lead]{
		Items:         leads,
		NextPageToken: nextPageToken,
		TotalCount:    totalCount,
		HasMore:       hasMore,
	}, nil
}

// UpdateLead — обновляет статус, счёт и счётчик активностей лида.
func (r *LeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	const op = "LeadRepository.UpdateLead"

	query := `
		UPDATE leads
		SET status = $1, score = $2, activity_count = $3, notes = $4, updated_at = NOW()
		WHERE lead_id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		lead.Status.String(), lead.Score, lead.ActivityCount, lead.Notes, lead.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrLeadNotFound)
	}

	return nil
}

// AddActivity — фиксирует касание по лиду.
func (r *LeadRepository) AddActivity(ctx context.Context, activity domain.LeadActivity) (uuid.UUID, error) {
	const op = "LeadRepository.AddActivity"

	query := `
		INSERT INTO lead_activities (lead_id, type, note)
		VALUES ($1, $2, $3)
		RETURNING activity_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, activity.LeadID, activity.Type, activity.Note).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// PipelineByAgent — сводка воронки: количество лидов по статусам,
// число горячих лидов и средний балл.
func (r *LeadRepository) PipelineByAgent(ctx context.Context, agentID uuid.UUID, hotThreshold int32) (domain.PipelineSummary, error) {
	const op = "LeadRepository.PipelineByAgent"

	query := `
		SELECT status, COUNT(*), COUNT(*) FILTER (WHERE score > $2), COALESCE(AVG(score), 0)
		FROM leads
		WHERE agent_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, agentID, hotThreshold)
	if err != nil {
		return domain.PipelineSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	summary := domain.PipelineSummary{
		AgentID:  agentID,
		ByStatus: make(map[domain.LeadStatus]int32),
	}
	var scoreSum float64
	for rows.Next() {
		var statusStr string
		var count, hot int32
		var avg float64
		if err := rows.Scan(&statusStr, &count, &hot, &avg); err != nil {
			return domain.PipelineSummary{}, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		status := domain.LeadStatus(statusStr)
		summary.ByStatus[status] = count
		summary.Total += count
		summary.HotLeads += hot
		scoreSum += avg * float64(count)
	}
	if err := rows.Err(); err != nil {
		return domain.PipelineSummary{}, fmt.Errorf("%s: rows error: %w", op, err)
	}

	if summary.Total > 0 {
		summary.AvgScore = scoreSum / float64(summary.Total)
	}

	return summary, nil
}
