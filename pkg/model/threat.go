package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ThreatCacheKey = "Threat:"
	// ThreatStream is the redis stream every stored threat is appended to.
	// The in-memory read index and the SSE notification endpoint both tail it.
	ThreatStream = "threats:stream"
	// ThreatLockKey serializes writers so stream offsets stay contiguous.
	ThreatLockKey = "threats:lock"
	// DiscoveryLockKey keeps concurrent discovery runs from overlapping.
	DiscoveryLockKey = "threats:discovery:lock"
)

type Threat struct {
	ID              string         `gorm:"type:varchar(36);primary_key" json:"id"`
	Title           string         `gorm:"type:varchar(512)" json:"title"`
	Region          string         `gorm:"type:varchar(128);index" json:"region"`
	Countries       pq.StringArray `gorm:"type:text[]" json:"countries"`
	Category        string         `gorm:"type:varchar(128);index" json:"category"`
	Description     string         `gorm:"type:text" json:"description"`
	PotentialImpact string         `gorm:"type:text" json:"potential_impact"`
	SourceURLs      pq.StringArray `gorm:"type:text[]" json:"source_urls"`
	// DateMentioned is free-form text lifted from the source article,
	// e.g. "July 23, 2025" or "Not specified".
	DateMentioned string `gorm:"type:varchar(64)" json:"date_mentioned"`
	// Version is the threat's offset in the redis stream.
	Version   int       `gorm:"index" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Threat) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type SearchThreatsRequest struct {
	Region   string
	Category string
	Country  string

	Offset int
	Limit  int
}

type ThreatService interface {
	FindAll(ctx context.Context, page, limit int64) ([]*Threat, error)
	FindByID(ctx context.Context, id string) (*Threat, error)
	// Store persists the threat and publishes it to the threat stream.
	Store(ctx context.Context, threat *Threat) (string, error)
	// Search queries the in-memory read index.
	Search(ctx context.Context, req *SearchThreatsRequest) ([]*Threat, int, error)
	// Restore rebuilds the in-memory store from the database and returns
	// the highest stream version seen.
	Restore() (version int, err error)
	// Subscribe tails the threat stream from the given offset.
	Subscribe(offset int) error
	Run() error
	Shutdown(ctx context.Context) error
}

type InMemoryStore interface {
	CreateThreat(threat *Threat) (string, error)
	// CreateBatchThreats loads a snapshot, only used during restore.
	CreateBatchThreats(threats []*Threat) error
	GetThreats(req *SearchThreatsRequest) ([]*Threat, int, error)
}

// ThreatFinder produces threat reports from external sources. Implemented
// by the RAG agent; stubbed in tests.
type ThreatFinder interface {
	FindThreats(ctx context.Context) ([]*ThreatReport, error)
}

type DiscoveryService interface {
	// DiscoverAndStore runs the agent, stores new reports and sends
	// notifications. Returns the number of threats stored.
	DiscoverAndStore(ctx context.Context) (int, error)
}

// Notifier delivers a newly stored threat to an external channel.
type Notifier interface {
	NotifyThreat(ctx context.Context, threat *Threat) error
}
