package domain

import "time"

// ActorType кто совершил действие
type ActorType string

const (
	ActorAdmin  ActorType = "admin"
	ActorParent ActorType = "parent"
	ActorSystem ActorType = "system"
)

// Действия журнала
const (
	ActionEnquirySubmitted    = "enquiry.submitted"
	ActionEnquiryStatus       = "enquiry.status_changed"
	ActionAdmissionCreated    = "admission.created"
	ActionAdmissionUpdated    = "admission.updated"
	ActionAdmissionSubmitted  = "admission.submitted"
	ActionAdmissionReviewed   = "admission.reviewed"
	ActionDocumentAdded       = "admission.document_added"
	ActionDocumentRemoved     = "admission.document_removed"
	ActionSlotCreated         = "slot.created"
	ActionSlotUpdated         = "slot.updated"
	ActionSlotsGenerated      = "slot.generated"
	ActionSlotBooked          = "slot.booked"
	ActionSlotBookingCanceled = "slot.booking_cancelled"
	ActionSettingsUpdated     = "settings.updated"
	ActionTemplateUpdated     = "template.updated"
)

// Типы сущностей журнала
const (
	EntityEnquiry   = "enquiry"
	EntityAdmission = "admission"
	EntitySlot      = "slot"
	EntityBooking   = "booking"
	EntitySettings  = "settings"
	EntityTemplate  = "template"
)

// Actor автор действия
type Actor struct {
	Type ActorType
	ID   *int64 // для сотрудников
	Ref  string // телефон родителя и т.п.
}

// SystemActor действие, выполненное сервисом
var SystemActor = Actor{Type: ActorSystem}

// AdminActor действие сотрудника
func AdminActor(id int64) Actor {
	return Actor{Type: ActorAdmin, ID: &id}
}

// ParentActor действие родителя
func ParentActor(mobile string) Actor {
	return Actor{Type: ActorParent, Ref: mobile}
}

// ActivityLog запись журнала аудита (только добавление)
type ActivityLog struct {
	ID         int64
	Actor      Actor
	Action     string
	EntityType string
	EntityID   int64
	Details    Fields
	CreatedAt  time.Time
}

// ActivityFilter фильтр журнала
type ActivityFilter struct {
	EntityType *string
	EntityID   *int64
	Limit      uint64
}
