package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// ListActivityRequest фильтр журнала
type ListActivityRequest struct {
	EntityType *string
	EntityID   *int64
	Limit      uint64
}

// ActivityResponse запись журнала
type ActivityResponse struct {
	ID         int64         `json:"id"`
	ActorType  string        `json:"actorType"`
	ActorID    *int64        `json:"actorId,omitempty"`
	ActorRef   string        `json:"actorRef,omitempty"`
	Action     string        `json:"action"`
	EntityType string        `json:"entityType"`
	EntityID   int64         `json:"entityId"`
	Details    domain.Fields `json:"details,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// ActivityListResponse ответ со списком записей журнала
type ActivityListResponse struct {
	Entries []ActivityResponse `json:"entries"`
}

// FromDomainActivityList конвертирует записи журнала
func FromDomainActivityList(list []*domain.ActivityLog) *ActivityListResponse {
	resp := &ActivityListResponse{Entries: make([]ActivityResponse, 0, len(list))}
	for _, e := range list {
		resp.Entries = append(resp.Entries, ActivityResponse{
			ID:         e.ID,
			ActorType:  string(e.Actor.Type),
			ActorID:    e.Actor.ID,
			ActorRef:   e.Actor.Ref,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp
}
