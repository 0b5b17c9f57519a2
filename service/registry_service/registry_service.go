package registry_service

import (
	"log"
	"sync"
	"time"

	"creator-engagement-system/chain"
	"creator-engagement-system/conf"
	"creator-engagement-system/service/ledger_service"

	"github.com/tidwall/gjson"
)

// SyncStatus snapshot of the last registry sync round
type SyncStatus struct {
	LastSyncAt       time.Time `json:"last_sync_at"`
	CreatorsTracked  int       `json:"creators_tracked"`
	ContentsTracked  int       `json:"contents_tracked"`
	LastError        string    `json:"last_error,omitempty"`
	ConsecutiveFails int       `json:"consecutive_fails"`
}

// RegistryService mirrors the on-chain creator and content registries into the
// off-chain directory.
//
// Each round reads both registry object-ID vectors through devInspect, decodes
// them, resolves the content objects to learn their creators, and
// create-if-absent mirrors everything through the ledger, under the same
// per-record locks the write path uses. Engagement state on existing records
// is never touched; the ledger remains the only writer of counters.
type RegistryService struct {
	client   *chain.Client
	ledger   *ledger_service.LedgerService
	interval time.Duration
	batch    int

	mu     sync.Mutex
	status SyncStatus

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRegistryService create registry sync service instance
func NewRegistryService(client *chain.Client) *RegistryService {
	return &RegistryService{
		client:   client,
		ledger:   ledger_service.NewLedgerService(),
		interval: time.Duration(conf.Cfg.Registry.SyncInterval) * time.Second,
		batch:    conf.Cfg.Registry.ResolveBatch,
		stopChan: make(chan struct{}),
	}
}

// Start run the sync loop until Stop is called
func (s *RegistryService) Start() {
	log.Printf("[Registry] sync started, interval=%s", s.interval)

	// First round immediately, then on the ticker
	s.syncOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncOnce()
		case <-s.stopChan:
			log.Println("[Registry] sync stopped")
			return
		}
	}
}

// Stop signal the sync loop to exit
func (s *RegistryService) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Status return a snapshot of the last sync round
func (s *RegistryService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// syncOnce run one full sync round
func (s *RegistryService) syncOnce() {
	creators, err := s.syncCreators()
	if err != nil {
		s.recordFailure(err)
		return
	}

	contents, err := s.syncContents()
	if err != nil {
		s.recordFailure(err)
		return
	}

	s.mu.Lock()
	s.status = SyncStatus{
		LastSyncAt:      time.Now(),
		CreatorsTracked: creators,
		ContentsTracked: contents,
	}
	s.mu.Unlock()

	log.Printf("[Registry] sync round done: %d creators, %d contents", creators, contents)
}

// syncCreators mirror the creator registry, returning the registry size
func (s *RegistryService) syncCreators() (int, error) {
	addresses, err := s.client.ReadAddressVector("get_all_creators", conf.Cfg.Registry.CreatorRegistry)
	if err != nil {
		return 0, err
	}

	for _, address := range addresses {
		if err := s.ledger.MirrorCreator(address); err != nil {
			return 0, err
		}
	}

	return len(addresses), nil
}

// syncContents mirror the content registry, resolving each object to learn its
// creator; objects the fullnode no longer knows are skipped
func (s *RegistryService) syncContents() (int, error) {
	ids, err := s.client.ReadAddressVector("get_all_contents", conf.Cfg.Registry.ContentRegistry)
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(ids); start += s.batch {
		end := start + s.batch
		if end > len(ids) {
			end = len(ids)
		}

		objects, err := s.client.GetObjects(ids[start:end])
		if err != nil {
			return 0, err
		}

		for _, obj := range objects {
			if err := s.mirrorContent(obj); err != nil {
				return 0, err
			}
		}
	}

	return len(ids), nil
}

// mirrorContent create-if-absent mirror one content object. Lazily created
// records learn their creator from the registry; the ledger claims the record
// under its stripe lock.
func (s *RegistryService) mirrorContent(obj chain.ObjectInfo) error {
	creatorAddress := gjson.Get(obj.Content, "creator").String()
	if creatorAddress == "" {
		creatorAddress = obj.Owner
	}

	return s.ledger.ClaimContentCreator(obj.ObjectID, creatorAddress)
}

func (s *RegistryService) recordFailure(err error) {
	log.Printf("[Registry] sync round failed: %v", err)

	s.mu.Lock()
	s.status.LastError = err.Error()
	s.status.ConsecutiveFails++
	s.mu.Unlock()
}
