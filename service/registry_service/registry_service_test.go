package registry_service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"creator-engagement-system/chain"
	"creator-engagement-system/common"
	"creator-engagement-system/database"
	"creator-engagement-system/model"
	"creator-engagement-system/service/ledger_service"
)

func setupRegistryDB(t *testing.T) {
	t.Helper()
	if err := database.InitDatabase(database.DBTypePebble, &database.PebbleConfig{
		DataDir: t.TempDir(),
	}); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.DB.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
}

func newTestRegistry() *RegistryService {
	return &RegistryService{ledger: ledger_service.NewLedgerService()}
}

func normID(t *testing.T, id string) string {
	t.Helper()
	normalized, err := common.NormalizeIdentifier(id)
	if err != nil {
		t.Fatalf("NormalizeIdentifier(%q) failed: %v", id, err)
	}
	return normalized
}

func TestMirrorContentCreatesRecord(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	err := s.mirrorContent(chain.ObjectInfo{
		ObjectID: "0xc1",
		Owner:    "0xaa",
		Content:  `{"creator":"0xbb"}`,
	})
	if err != nil {
		t.Fatalf("mirrorContent failed: %v", err)
	}

	content, err := database.DB.GetContentByBlobID(normID(t, "0xc1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != normID(t, "0xbb") {
		t.Errorf("Expected creator from fields, got %s", content.CreatorAddress)
	}
}

func TestMirrorContentFallsBackToOwner(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	err := s.mirrorContent(chain.ObjectInfo{
		ObjectID: "0xc1",
		Owner:    "0xaa",
		Content:  `{}`,
	})
	if err != nil {
		t.Fatalf("mirrorContent failed: %v", err)
	}

	content, err := database.DB.GetContentByBlobID(normID(t, "0xc1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != normID(t, "0xaa") {
		t.Errorf("Expected owner fallback, got %s", content.CreatorAddress)
	}
}

func TestMirrorContentClaimsLazyRecord(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	// Record created by engagement before the registry learned about it
	if err := database.DB.CreateContent(&model.Content{BlobID: normID(t, "0xc1")}); err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}

	err := s.mirrorContent(chain.ObjectInfo{
		ObjectID: "0xc1",
		Content:  `{"creator":"0xbb"}`,
	})
	if err != nil {
		t.Fatalf("mirrorContent failed: %v", err)
	}

	content, err := database.DB.GetContentByBlobID(normID(t, "0xc1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != normID(t, "0xbb") {
		t.Errorf("Expected claimed creator, got %s", content.CreatorAddress)
	}
}

func TestMirrorContentNeverOverwritesCreator(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	if err := database.DB.CreateContent(&model.Content{
		BlobID:         normID(t, "0xc1"),
		CreatorAddress: normID(t, "0xaa"),
	}); err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}

	err := s.mirrorContent(chain.ObjectInfo{
		ObjectID: "0xc1",
		Content:  `{"creator":"0xbb"}`,
	})
	if err != nil {
		t.Fatalf("mirrorContent failed: %v", err)
	}

	content, err := database.DB.GetContentByBlobID(normID(t, "0xc1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != normID(t, "0xaa") {
		t.Errorf("Expected original creator kept, got %s", content.CreatorAddress)
	}
}

// A claim arriving while engagement lands on the same lazily created record
// must never roll the recomputed counters back; both writers serialize on the
// record's stripe.
func TestClaimDoesNotEraseConcurrentLikes(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()
	ledger := ledger_service.NewLedgerService()

	creator := normID(t, "0xbb")
	for i := 0; i < 50; i++ {
		blob := normID(t, fmt.Sprintf("0xc1%02x", i))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, _, err := ledger.RecordLike("0xaa", blob); err != nil {
				t.Errorf("RecordLike failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			err := s.mirrorContent(chain.ObjectInfo{
				ObjectID: blob,
				Content:  `{"creator":"0xbb"}`,
			})
			if err != nil {
				t.Errorf("mirrorContent failed: %v", err)
			}
		}()
		wg.Wait()

		content, err := database.DB.GetContentByBlobID(blob)
		if err != nil {
			t.Fatalf("GetContentByBlobID failed: %v", err)
		}
		if content.TotalLikes != 1 {
			t.Fatalf("Expected 1 like after concurrent claim, got %d", content.TotalLikes)
		}
		if content.CreatorAddress != creator {
			t.Fatalf("Expected claimed creator, got %q", content.CreatorAddress)
		}
	}
}

func TestSyncCreatorsKeepsExistingRecords(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	address := normID(t, "0xaa")
	if err := database.DB.CreateCreator(&model.Creator{
		Address:         address,
		Name:            "alice",
		LikeCount:       3,
		TotalEngagement: 3,
	}); err != nil {
		t.Fatalf("CreateCreator failed: %v", err)
	}

	if err := s.ledger.MirrorCreator(address); err != nil {
		t.Fatalf("MirrorCreator failed: %v", err)
	}

	creator, err := database.DB.GetCreatorByAddress(address)
	if err != nil {
		t.Fatalf("GetCreatorByAddress failed: %v", err)
	}
	if creator.Name != "alice" || creator.TotalEngagement != 3 {
		t.Errorf("Expected existing record untouched, got name=%q total=%d",
			creator.Name, creator.TotalEngagement)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := &RegistryService{stopChan: make(chan struct{})}
	s.Stop()
	s.Stop()

	select {
	case <-s.stopChan:
	default:
		t.Error("Expected stop channel closed")
	}
}

func TestMirrorContentSurfacesStorageErrors(t *testing.T) {
	setupRegistryDB(t)
	s := newTestRegistry()

	if err := s.mirrorContent(chain.ObjectInfo{ObjectID: "0xc1", Owner: "0xaa"}); err != nil {
		t.Fatalf("mirrorContent failed: %v", err)
	}
	// Mirroring the same record again stays a no-op
	if err := s.mirrorContent(chain.ObjectInfo{ObjectID: "0xc1", Owner: "0xaa"}); err != nil {
		t.Fatalf("mirrorContent failed on repeat: %v", err)
	}

	if _, err := database.DB.GetContentByBlobID(normID(t, "0xc2")); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unmirrored id, got %v", err)
	}
}
