// Package inmem holds the read-optimized threat store fed from the threat
// stream. memdb provides the attribute indexes, a sorted set keeps the
// newest-first ordering used for pagination.
package inmem

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/wangjia184/sortedset"

	"maritime-threats-backend/pkg/model"
)

var (
	// ErrNoThreatsFound is returned when no threat matches the query, 404
	ErrNoThreatsFound error = fmt.Errorf("no threats found")
	// ErrOffsetOutOfRange is returned when the offset is out of range, 404
	ErrOffsetOutOfRange error = fmt.Errorf("offset is out of range")
)

const (
	tableThreats = "threats"

	indexID       = "id"
	indexRegion   = "region"
	indexCategory = "category"
	indexCountry  = "country"

	defaultLimit = 10
)

func threatSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableThreats: {
				Name: tableThreats,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexRegion: {
						Name:         indexRegion,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "Region"},
					},
					indexCategory: {
						Name:         indexCategory,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "Category"},
					},
					indexCountry: {
						Name:         indexCountry,
						AllowMissing: true,
						Indexer:      &memdb.StringSliceFieldIndex{Field: "Countries"},
					},
				},
			},
		},
	}
}

type InMemoryStoreImpl struct {
	db *memdb.MemDB
	// recency ranks threat IDs by creation time, newest first.
	recency *sortedset.SortedSet[string, int64, *model.Threat]
	mu      sync.RWMutex
}

func NewInMemoryStore() model.InMemoryStore {
	db, err := memdb.NewMemDB(threatSchema())
	if err != nil {
		panic(err)
	}
	return &InMemoryStoreImpl{
		db:      db,
		recency: sortedset.New[string, int64, *model.Threat](),
	}
}

func (s *InMemoryStoreImpl) CreateThreat(threat *model.Threat) (string, error) {
	txn := s.db.Txn(true)
	if err := txn.Insert(tableThreats, threat); err != nil {
		txn.Abort()
		return "", err
	}
	txn.Commit()

	s.mu.Lock()
	// negated timestamp so rank 1 is the newest threat
	s.recency.AddOrUpdate(threat.ID, -threat.CreatedAt.Unix(), threat)
	s.mu.Unlock()

	return threat.ID, nil
}

// CreateBatchThreats loads a snapshot of threats into the store
// (only used in the restore path).
func (s *InMemoryStoreImpl) CreateBatchThreats(threats []*model.Threat) error {
	txn := s.db.Txn(true)
	for _, threat := range threats {
		if err := txn.Insert(tableThreats, threat); err != nil {
			txn.Abort()
			return err
		}
	}
	txn.Commit()

	s.mu.Lock()
	for _, threat := range threats {
		s.recency.AddOrUpdate(threat.ID, -threat.CreatedAt.Unix(), threat)
	}
	s.mu.Unlock()

	return nil
}

func (s *InMemoryStoreImpl) GetThreats(req *model.SearchThreatsRequest) ([]*model.Threat, int, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	if req.Region == "" && req.Category == "" && req.Country == "" {
		return s.recentThreats(req.Offset, limit)
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	var (
		it  memdb.ResultIterator
		err error
	)
	switch {
	case req.Country != "":
		it, err = txn.Get(tableThreats, indexCountry, req.Country)
	case req.Region != "":
		it, err = txn.Get(tableThreats, indexRegion, req.Region)
	default:
		it, err = txn.Get(tableThreats, indexCategory, req.Category)
	}
	if err != nil {
		return nil, 0, err
	}

	var matched []*model.Threat
	for obj := it.Next(); obj != nil; obj = it.Next() {
		threat := obj.(*model.Threat)
		if matchesQuery(threat, req) {
			matched = append(matched, threat)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, req.Offset, limit)
}

func (s *InMemoryStoreImpl) recentThreats(offset, limit int) ([]*model.Threat, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.recency.GetCount()
	if total == 0 {
		return nil, 0, ErrNoThreatsFound
	}
	if offset < 0 || offset >= total {
		return nil, 0, ErrOffsetOutOfRange
	}

	end := offset + limit
	if end > total {
		end = total
	}

	// sorted set ranks are 1-based
	nodes := s.recency.GetRangeByRank(offset+1, end, false)
	threats := make([]*model.Threat, 0, len(nodes))
	for _, node := range nodes {
		threats = append(threats, node.Value)
	}
	return threats, total, nil
}

func matchesQuery(threat *model.Threat, req *model.SearchThreatsRequest) bool {
	if req.Region != "" && threat.Region != req.Region {
		return false
	}
	if req.Category != "" && threat.Category != req.Category {
		return false
	}
	if req.Country != "" {
		found := false
		for _, country := range threat.Countries {
			if country == req.Country {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func paginate(threats []*model.Threat, offset, limit int) ([]*model.Threat, int, error) {
	total := len(threats)
	if total == 0 {
		return nil, 0, ErrNoThreatsFound
	}
	if offset < 0 || offset >= total {
		return nil, 0, ErrOffsetOutOfRange
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return threats[offset:end], total, nil
}
