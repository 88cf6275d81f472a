package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bsm/redislock"
	mapset "github.com/deckarep/golang-set/v2"

	"maritime-threats-backend/pkg/model"
)

// ErrDiscoveryRunning is returned when a discovery run is already holding
// the lock, matching the single-instance schedule of the original job.
var ErrDiscoveryRunning = fmt.Errorf("a discovery run is already in progress")

const (
	discoveryLockTTL = 10 * time.Minute
	// dedupWindow bounds how many recent threats are loaded to skip
	// reports the agent has already produced on earlier runs.
	dedupWindow = 200
)

type DiscoveryService struct {
	finder   model.ThreatFinder
	threats  model.ThreatService
	notifier model.Notifier
	locker   *redislock.Client
	lockKey  string
	// obtain is swapped out in tests
	obtain func(ctx context.Context) (release func(), err error)
}

func NewDiscoveryService(finder model.ThreatFinder, threats model.ThreatService, notifier model.Notifier, locker *redislock.Client) model.DiscoveryService {
	svc := &DiscoveryService{
		finder:   finder,
		threats:  threats,
		notifier: notifier,
		locker:   locker,
		lockKey:  model.DiscoveryLockKey,
	}
	svc.obtain = svc.obtainLock
	return svc
}

func (s *DiscoveryService) obtainLock(ctx context.Context) (func(), error) {
	lock, err := s.locker.Obtain(ctx, s.lockKey, discoveryLockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrDiscoveryRunning
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			log.Printf("Could not release discovery lock: %v", err)
		}
	}, nil
}

// DiscoverAndStore runs the agent, stores every report not seen before and
// notifies subscribers about each stored threat. A failing report or
// notification is logged and skipped; it never aborts the whole run.
func (s *DiscoveryService) DiscoverAndStore(ctx context.Context) (int, error) {
	release, err := s.obtain(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	log.Println("Starting agent to discover threats...")

	reports, err := s.finder.FindThreats(ctx)
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		log.Println("Agent finished: no new threats found")
		return 0, nil
	}
	log.Printf("Found %d potential threats", len(reports))

	seen := mapset.NewSet[string]()
	recent, err := s.threats.FindAll(ctx, 1, dedupWindow)
	if err != nil {
		return 0, err
	}
	for _, threat := range recent {
		seen.Add(threat.Title)
	}

	stored := 0
	for _, report := range reports {
		if !seen.Add(report.Title) {
			continue
		}

		threat := report.ToThreat()
		if _, err := s.threats.Store(ctx, threat); err != nil {
			log.Printf("Error storing threat report %q: %v", report.Title, err)
			continue
		}
		stored++
		log.Printf("New threat saved: %s", threat.Title)

		if err := s.notifier.NotifyThreat(ctx, threat); err != nil {
			log.Printf("Failed to send notification for threat %q: %v", threat.Title, err)
		}
	}

	log.Printf("Threat discovery completed, stored %d threats", stored)
	return stored, nil
}
