package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bsm/redislock"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"maritime-threats-backend/pkg/dispatcher"
	"maritime-threats-backend/pkg/model"
)

var (
	ErrTimeout = fmt.Errorf("timeout")
	ErrUnknown = fmt.Errorf("unknown error")
)

const (
	threatCacheTTL = 2 * time.Hour
	searchTimeout  = 3 * time.Second
)

type ThreatService struct {
	shutdown   atomic.Bool
	dispatcher *dispatcher.Dispatcher
	db         *gorm.DB
	redis      *redis.Client
	locker     *redislock.Client
	lockKey    string
	// threatStream is the redis stream every stored threat is published to
	threatStream string
	mu           sync.Mutex
	wg           sync.WaitGroup
	onShutdown   []func()
}

func NewThreatService(disp *dispatcher.Dispatcher, db *gorm.DB, cache *redis.Client, locker *redislock.Client) model.ThreatService {
	return &ThreatService{
		dispatcher:   disp,
		db:           db,
		redis:        cache,
		locker:       locker,
		lockKey:      model.ThreatLockKey,
		threatStream: model.ThreatStream,
	}
}

// FindAll returns threats from the database, newest first.
func (s *ThreatService) FindAll(ctx context.Context, page, limit int64) (threats []*model.Threat, err error) {
	err = s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(int(limit)).
		Offset(int((page - 1) * limit)).
		Find(&threats).Error
	if err != nil {
		return nil, err
	}
	return
}

func (s *ThreatService) FindByID(ctx context.Context, id string) (threat *model.Threat, err error) {
	cached, err := s.redis.Get(ctx, model.ThreatCacheKey+id).Result()
	if err == nil {
		threat = &model.Threat{}
		if err := json.Unmarshal([]byte(cached), threat); err == nil {
			return threat, nil
		}
	}

	err = s.db.WithContext(ctx).Where(&model.Threat{ID: id}).First(&threat).Error
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(threat); err == nil {
		s.redis.Set(ctx, model.ThreatCacheKey+id, data, threatCacheTTL)
	}
	return threat, nil
}

// Store persists the threat and appends it to the threat stream, both under
// the writer lock so stream offsets stay contiguous with versions.
func (s *ThreatService) Store(ctx context.Context, threat *model.Threat) (string, error) {
	lock, err := s.locker.Obtain(ctx, s.lockKey, 10*time.Second, &redislock.Options{
		RetryStrategy: redislock.ExponentialBackoff(10*time.Millisecond, 500*time.Millisecond),
	})
	if err != nil {
		return "", err
	}
	defer lock.Release(ctx)

	txn := s.db.WithContext(ctx).Begin()

	var maxVersion int
	if err := txn.Model(&model.Threat{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error; err != nil {
		txn.Rollback()
		return "", err
	}
	threat.Version = maxVersion + 1

	if err := txn.Create(threat).Error; err != nil {
		txn.Rollback()
		return "", err
	}

	req := &dispatcher.CreateThreatRequest{
		Request: dispatcher.Request{RequestID: uuid.New().String()},
		Threat:  threat,
	}
	values, err := req.Payload()
	if err != nil {
		txn.Rollback()
		return "", err
	}

	if err := s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: s.threatStream,
		ID:     fmt.Sprintf("%d-0", threat.Version),
		Values: values,
	}).Err(); err != nil {
		txn.Rollback()
		return "", err
	}

	if err := txn.Commit().Error; err != nil {
		return "", err
	}

	go s.redis.Del(context.Background(), model.ThreatCacheKey+threat.ID)
	return threat.ID, nil
}

// Search queries the in-memory read index through the dispatcher.
func (s *ThreatService) Search(ctx context.Context, req *model.SearchThreatsRequest) ([]*model.Threat, int, error) {
	requestID := uuid.New().String()
	respChan := make(chan dispatcher.IResult, 1)
	s.dispatcher.ResponseChan.Store(requestID, respChan)
	defer s.dispatcher.ResponseChan.Delete(requestID)

	select {
	case s.dispatcher.RequestChan <- &dispatcher.GetThreatsRequest{
		Request:              dispatcher.Request{RequestID: requestID},
		SearchThreatsRequest: req,
	}:
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}

	select {
	case result := <-respChan:
		resp, ok := result.(*dispatcher.GetThreatsResponse)
		if !ok {
			return nil, 0, ErrUnknown
		}
		return resp.Threats, resp.Total, resp.Err
	case <-time.After(searchTimeout):
		return nil, 0, ErrTimeout
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}

// Restore rebuilds the in-memory store from the database. It returns the
// highest stream version present, which Subscribe resumes from.
func (s *ThreatService) Restore() (version int, err error) {
	err = s.db.Model(&model.Threat{}).Select("COALESCE(MAX(version), 0)").Scan(&version).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	}

	var threats []*model.Threat
	if err := s.db.Find(&threats).Error; err != nil {
		return 0, err
	}

	requestID := uuid.New().String()
	respChan := make(chan dispatcher.IResult, 1)
	s.dispatcher.ResponseChan.Store(requestID, respChan)
	defer s.dispatcher.ResponseChan.Delete(requestID)

	s.dispatcher.RequestChan <- &dispatcher.CreateBatchThreatsRequest{
		Request: dispatcher.Request{RequestID: requestID},
		Threats: threats,
	}

	result := <-respChan
	if err := result.Error(); err != nil {
		return 0, err
	}
	return version, nil
}

// Subscribe tails the threat stream from the given offset and feeds each
// entry to the dispatcher.
func (s *ThreatService) Subscribe(offset int) error {
	ctx := context.Background()
	lastID := fmt.Sprintf("%d-0", offset)
	stopCh := make(chan struct{}, 1)

	s.wg.Add(1)
	defer s.wg.Done()

	s.registerOnShutdown(func() {
		close(stopCh)
	})

	for s.shutdown.Load() == false {
		select {
		case <-stopCh:
			return nil
		default:
			xReadArgs := &redis.XReadArgs{
				Streams: []string{s.threatStream, lastID},
				Block:   5 * time.Second,
				Count:   10,
			}
			msgs, err := s.redis.XRead(ctx, xReadArgs).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				time.Sleep(1 * time.Second)
				continue
			}
			for _, msg := range msgs {
				for _, m := range msg.Messages {
					req := &dispatcher.CreateThreatRequest{}
					if err := req.FromPayload(m.Values); err != nil {
						lastID = m.ID
						continue
					}
					s.dispatcher.RequestChan <- req
					lastID = m.ID
				}
			}
		}
	}
	return nil
}

func (s *ThreatService) Run() error {
	stopCh := make(chan struct{}, 1)

	s.wg.Add(1)
	defer s.wg.Done()

	s.registerOnShutdown(func() {
		close(stopCh)
	})

	operation := func() error {
		version, err := s.Restore()
		if err != nil {
			return err
		}
		return s.Subscribe(version)
	}

	operationBackoff := backoff.NewExponentialBackOff()
	currentRetry := 0
	maxRetry := 5
	for s.shutdown.Load() == false {
		select {
		case <-stopCh:
			return nil
		default:
			err := backoff.Retry(operation, operationBackoff)
			if err != nil {
				currentRetry++
				if currentRetry > maxRetry {
					return fmt.Errorf("max retry reached: %w", err)
				}
			} else {
				return nil
			}
		}
	}
	return nil
}

func (s *ThreatService) Shutdown(ctx context.Context) error {
	s.shutdown.Store(true)
	done := make(chan struct{})
	s.mu.Lock()
	for _, f := range s.onShutdown {
		go f()
	}
	s.mu.Unlock()
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ThreatService) registerOnShutdown(f func()) {
	s.mu.Lock()
	s.onShutdown = append(s.onShutdown, f)
	s.mu.Unlock()
}

func (s *ThreatService) onShutdownNum() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.onShutdown)
}
