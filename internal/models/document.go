package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an ingested text chunk with its embedding, stored for
// similarity search. Embedding holds the pgvector literal ("[0.1,0.2,...]").
type Document struct {
	ID        string                 `json:"id" gorm:"type:uuid;primary_key"`
	Content   string                 `json:"content" gorm:"not null"`
	Metadata  map[string]interface{} `json:"metadata" gorm:"serializer:json"`
	Embedding string                 `json:"-" gorm:"type:vector(1536)"`
	CreatedAt time.Time              `json:"created_at"`
}

// Message is one chat turn, insert-only.
type Message struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	SessionID string    `json:"session_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
