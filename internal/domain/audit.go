package domain

import "time"

// Audit carries the bookkeeping fields shared by every persisted entity.
// The repository layer is the only writer; callers never set these directly.
type Audit struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy uint      `gorm:"index" json:"createdBy,omitempty"`
	UpdatedBy uint      `json:"updatedBy,omitempty"`
}

func (a *Audit) SetCreatedBy(actorID uint) { a.CreatedBy = actorID }
func (a *Audit) SetUpdatedBy(actorID uint) { a.UpdatedBy = actorID }

// Auditable is satisfied by every entity embedding Audit.
type Auditable interface {
	SetCreatedBy(actorID uint)
	SetUpdatedBy(actorID uint)
}
