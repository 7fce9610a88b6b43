package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead — лид агента в CRM.
type Lead struct {
	ID      uuid.UUID
	AgentID uuid.UUID
	Name    string
	Phone   *string
	Email   *string
	// Budget — заявленный бюджет покупателя
	Budget *int64
	// TimelineMonths — горизонт покупки в месяцах
	TimelineMonths *int32
	Source         LeadSource
	Status         LeadStatus
	// Score — качество лида 0..100, пересчитывается при каждом изменении
	Score int32
	// ActivityCount — число зафиксированных касаний (звонки, показы)
	ActivityCount int32
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeadSource — источник лида.
type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "WEBSITE"
	LeadSourceReferral LeadSource = "REFERRAL"
	LeadSourcePortal   LeadSource = "PORTAL"
	LeadSourceWalkIn   LeadSource = "WALK_IN"
	LeadSourceOther    LeadSource = "OTHER"
)

// LeadStatus — стадия воронки.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusContacted  LeadStatus = "CONTACTED"
	LeadStatusQualified  LeadStatus = "QUALIFIED"
	LeadStatusViewing    LeadStatus = "VIEWING"
	LeadStatusNegotiating LeadStatus = "NEGOTIATING"
	LeadStatusClosed     LeadStatus = "CLOSED"
	LeadStatusLost       LeadStatus = "LOST"
)

func (s LeadStatus) String() string {
	return string(s)
}

// LeadActivity — зафиксированное касание по лиду.
type LeadActivity struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Type      string // CALL, VIEWING, EMAIL, MEETING
	Note      *string
	CreatedAt time.Time
}

// PipelineSummary — сводка воронки агента.
type PipelineSummary struct {
	AgentID     uuid.UUID            `json:"agent_id"`
	Total       int32                `json:"total"`
	ByStatus    map[LeadStatus]int32 `json:"by_status"`
	HotLeads    int32                `json:"hot_leads"`
	// AvgScore — средний балл по активным лидам
	AvgScore float64 `json:"avg_score"`
}

// LeadFilter — фильтр выборки лидов.
type LeadFilter struct {
	AgentID  *uuid.UUID
	Status   *LeadStatus
	MinScore *int32

	Pagination *PaginationParams
}
