package ledger_service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"creator-engagement-system/common"
	"creator-engagement-system/database"
)

func setupLedger(t *testing.T) *LedgerService {
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
	return NewLedgerService()
}

func mustNormalize(t *testing.T, id string) string {
	t.Helper()
	canonical, err := common.NormalizeIdentifier(id)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return canonical
}

func TestLikeUnlikeScenario(t *testing.T) {
	ledger := setupLedger(t)

	// Like on an empty store lazily creates both records
	content, user, err := ledger.RecordLike("0xAA", "0xC1")
	if err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	if content.TotalLikes != 1 {
		t.Errorf("Expected 1 like, got %d", content.TotalLikes)
	}
	if user.LikeCount != 1 {
		t.Errorf("Expected user like count 1, got %d", user.LikeCount)
	}

	// Repeat like is a no-op
	content, _, err = ledger.RecordLike("0xAA", "0xC1")
	if err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	if content.TotalLikes != 1 {
		t.Errorf("Expected 1 like after repeat, got %d", content.TotalLikes)
	}

	// Unlike removes the like
	content, user, err = ledger.RecordUnlike("0xAA", "0xC1")
	if err != nil {
		t.Fatalf("RecordUnlike failed: %v", err)
	}
	if content.TotalLikes != 0 {
		t.Errorf("Expected 0 likes, got %d", content.TotalLikes)
	}
	if user.LikeCount != 0 {
		t.Errorf("Expected user like count 0, got %d", user.LikeCount)
	}

	// Second unlike is a no-op, never negative
	content, _, err = ledger.RecordUnlike("0xAA", "0xC1")
	if err != nil {
		t.Fatalf("RecordUnlike failed: %v", err)
	}
	if content.TotalLikes != 0 {
		t.Errorf("Expected 0 likes after repeat unlike, got %d", content.TotalLikes)
	}
}

func TestUnlikeUnknownContent(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordUnlike("0xAA", "0xC1"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCommentOrderingAndTotals(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordComment("0xAA", "0xC1", "hello"); err != nil {
		t.Fatalf("RecordComment failed: %v", err)
	}
	content, commenter, err := ledger.RecordComment("0xBB", "0xC1", "world")
	if err != nil {
		t.Fatalf("RecordComment failed: %v", err)
	}

	if content.TotalComments != 2 {
		t.Errorf("Expected 2 comments, got %d", content.TotalComments)
	}
	if content.TotalEngagement != 2 {
		t.Errorf("Expected content total engagement 2, got %d", content.TotalEngagement)
	}
	if commenter.CommentCount != 1 {
		t.Errorf("Expected commenter count 1, got %d", commenter.CommentCount)
	}

	comments, err := database.DB.GetCommentsByBlobID(mustNormalize(t, "0xC1"))
	if err != nil {
		t.Fatalf("GetCommentsByBlobID failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}
	if comments[0].Text != "hello" || comments[1].Text != "world" {
		t.Errorf("Comments out of insertion order: %q, %q", comments[0].Text, comments[1].Text)
	}
}

func TestEmptyCommentRejected(t *testing.T) {
	ledger := setupLedger(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, _, err := ledger.RecordComment("0xAA", "0xC1", text); !errors.Is(err, ErrEmptyComment) {
			t.Errorf("Text %q: expected ErrEmptyComment, got %v", text, err)
		}
	}

	// Rejection happens before any record is touched
	if _, err := database.DB.GetContentByBlobID(mustNormalize(t, "0xC1")); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected no content record, got %v", err)
	}
}

func TestSelfFollowRejected(t *testing.T) {
	ledger := setupLedger(t)

	creator, err := ledger.RegisterCreator("0xAA", "alice")
	if err != nil {
		t.Fatalf("RegisterCreator failed: %v", err)
	}

	// Same identity in different spellings is still a self-follow
	for _, target := range []string{"0xAA", "0xaa", creator.Address} {
		if _, _, err := ledger.RecordFollow("0xAA", target); !errors.Is(err, ErrSelfFollow) {
			t.Errorf("Target %q: expected ErrSelfFollow, got %v", target, err)
		}
	}

	after, err := database.DB.GetCreatorByAddress(creator.Address)
	if err != nil {
		t.Fatalf("GetCreatorByAddress failed: %v", err)
	}
	if after.FollowerCount != 0 || after.FollowingCount != 0 || after.TotalEngagement != 0 {
		t.Errorf("Self-follow changed state: %+v", after)
	}
}

func TestFollowUpdatesBothSides(t *testing.T) {
	ledger := setupLedger(t)

	if _, err := ledger.RegisterCreator("0xAA", "alice"); err != nil {
		t.Fatalf("RegisterCreator failed: %v", err)
	}
	if _, err := ledger.RegisterCreator("0xBB", "bob"); err != nil {
		t.Fatalf("RegisterCreator failed: %v", err)
	}

	follower, followee, err := ledger.RecordFollow("0xAA", "0xBB")
	if err != nil {
		t.Fatalf("RecordFollow failed: %v", err)
	}
	if follower.FollowingCount != 1 {
		t.Errorf("Expected following count 1, got %d", follower.FollowingCount)
	}
	if followee.FollowerCount != 1 {
		t.Errorf("Expected follower count 1, got %d", followee.FollowerCount)
	}
	// Follower count feeds the followee's total, following count does not
	if followee.TotalEngagement != 1 {
		t.Errorf("Expected followee total 1, got %d", followee.TotalEngagement)
	}
	if follower.TotalEngagement != 0 {
		t.Errorf("Expected follower total 0, got %d", follower.TotalEngagement)
	}

	// Duplicate follow is a no-op
	_, followee, err = ledger.RecordFollow("0xAA", "0xBB")
	if err != nil {
		t.Fatalf("RecordFollow failed: %v", err)
	}
	if followee.FollowerCount != 1 {
		t.Errorf("Expected follower count 1 after repeat, got %d", followee.FollowerCount)
	}
}

func TestFollowUnknownCreator(t *testing.T) {
	ledger := setupLedger(t)

	if _, err := ledger.RegisterCreator("0xAA", "alice"); err != nil {
		t.Fatalf("RegisterCreator failed: %v", err)
	}

	if _, _, err := ledger.RecordFollow("0xAA", "0xBB"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown followee, got %v", err)
	}
	if _, _, err := ledger.RecordFollow("0xCC", "0xAA"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown follower, got %v", err)
	}
}

func TestRegisterContentClaimsLazyRecord(t *testing.T) {
	ledger := setupLedger(t)

	// Engagement references the content before anyone registered it
	content, _, err := ledger.RecordLike("0xAA", "0xC1")
	if err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	if content.CreatorAddress != "" {
		t.Fatalf("Expected lazily created content without creator, got %s", content.CreatorAddress)
	}

	if _, err := ledger.RegisterCreator("0xBB", "bob"); err != nil {
		t.Fatalf("RegisterCreator failed: %v", err)
	}

	claimed, err := ledger.RegisterContent("0xC1", "0xBB")
	if err != nil {
		t.Fatalf("RegisterContent failed: %v", err)
	}
	if claimed.CreatorAddress != mustNormalize(t, "0xBB") {
		t.Errorf("Expected claimed creator, got %s", claimed.CreatorAddress)
	}
	if claimed.TotalLikes != 1 {
		t.Errorf("Expected existing like preserved, got %d", claimed.TotalLikes)
	}

	// Claimed content is now owned
	owned, err := database.DB.GetContentsByCreator(mustNormalize(t, "0xBB"))
	if err != nil {
		t.Fatalf("GetContentsByCreator failed: %v", err)
	}
	if len(owned) != 1 {
		t.Errorf("Expected 1 owned content, got %d", len(owned))
	}

	// A second registration of the same blob fails
	if _, err := ledger.RegisterContent("0xC1", "0xBB"); !errors.Is(err, database.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterContentUnknownCreator(t *testing.T) {
	ledger := setupLedger(t)

	if _, err := ledger.RegisterContent("0xC1", "0xBB"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetTotalEngagement(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordLike("0xAA", "0xC1"); err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	if _, _, err := ledger.RecordComment("0xAA", "0xC1", "hello"); err != nil {
		t.Fatalf("RecordComment failed: %v", err)
	}

	contentTotal, err := ledger.GetTotalEngagement("0xC1", KindContent)
	if err != nil {
		t.Fatalf("GetTotalEngagement failed: %v", err)
	}
	if contentTotal != 2 {
		t.Errorf("Expected content total 2, got %d", contentTotal)
	}

	userTotal, err := ledger.GetTotalEngagement("0xAA", KindCreator)
	if err != nil {
		t.Fatalf("GetTotalEngagement failed: %v", err)
	}
	if userTotal != 2 {
		t.Errorf("Expected user total 2, got %d", userTotal)
	}

	if _, err := ledger.GetTotalEngagement("0xDD", KindCreator); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := ledger.GetTotalEngagement("0xC1", EngagementKind("bogus")); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestInvalidIdentifiersRejected(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordLike("not-hex", "0xC1"); !errors.Is(err, common.ErrInvalidIdentifier) {
		t.Errorf("Expected ErrInvalidIdentifier, got %v", err)
	}
	if _, err := ledger.RegisterCreator("", "alice"); !errors.Is(err, common.ErrInvalidIdentifier) {
		t.Errorf("Expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestTotalEngagementInvariantRandomized(t *testing.T) {
	ledger := setupLedger(t)
	rng := rand.New(rand.NewSource(7))

	users := []string{"0xA1", "0xA2", "0xA3"}
	contents := []string{"0xC1", "0xC2"}
	for _, user := range users {
		if _, err := ledger.RegisterCreator(user, ""); err != nil {
			t.Fatalf("RegisterCreator failed: %v", err)
		}
	}

	for i := 0; i < 300; i++ {
		user := users[rng.Intn(len(users))]
		blob := contents[rng.Intn(len(contents))]

		var err error
		switch rng.Intn(4) {
		case 0:
			_, _, err = ledger.RecordLike(user, blob)
		case 1:
			_, _, err = ledger.RecordUnlike(user, blob)
			// Unlike before any like on that content is a legal NotFound
			if errors.Is(err, database.ErrNotFound) {
				err = nil
			}
		case 2:
			_, _, err = ledger.RecordComment(user, blob, fmt.Sprintf("comment %d", i))
		case 3:
			target := users[rng.Intn(len(users))]
			_, _, err = ledger.RecordFollow(user, target)
			if errors.Is(err, ErrSelfFollow) {
				err = nil
			}
		}
		if err != nil {
			t.Fatalf("Operation %d failed: %v", i, err)
		}
	}

	for _, user := range users {
		creator, err := database.DB.GetCreatorByAddress(mustNormalize(t, user))
		if err != nil {
			t.Fatalf("GetCreatorByAddress failed: %v", err)
		}
		want := creator.LikeCount + creator.CommentCount + creator.FollowerCount
		if creator.TotalEngagement != want {
			t.Errorf("User %s: total %d, expected %d (likes=%d comments=%d followers=%d)",
				user, creator.TotalEngagement, want,
				creator.LikeCount, creator.CommentCount, creator.FollowerCount)
		}
		if creator.LikeCount < 0 || creator.CommentCount < 0 || creator.FollowerCount < 0 {
			t.Errorf("User %s: negative counter: %+v", user, creator)
		}
	}

	for _, blob := range contents {
		content, err := database.DB.GetContentByBlobID(mustNormalize(t, blob))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			t.Fatalf("GetContentByBlobID failed: %v", err)
		}
		if content.TotalEngagement != content.TotalLikes+content.TotalComments {
			t.Errorf("Content %s: total %d, expected %d", blob,
				content.TotalEngagement, content.TotalLikes+content.TotalComments)
		}
	}
}

func TestConcurrentLikesSamePair(t *testing.T) {
	ledger := setupLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := ledger.RecordLike("0xAA", "0xC1"); err != nil {
				t.Errorf("RecordLike failed: %v", err)
			}
		}()
	}
	wg.Wait()

	content, err := database.DB.GetContentByBlobID(mustNormalize(t, "0xC1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.TotalLikes != 1 {
		t.Errorf("Expected 1 like after concurrent duplicates, got %d", content.TotalLikes)
	}
}

func TestConcurrentLikesDistinctContents(t *testing.T) {
	ledger := setupLedger(t)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			blob := fmt.Sprintf("0xc%02d", i)
			if _, _, err := ledger.RecordLike("0xAA", blob); err != nil {
				t.Errorf("RecordLike failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	user, err := database.DB.GetCreatorByAddress(mustNormalize(t, "0xAA"))
	if err != nil {
		t.Fatalf("GetCreatorByAddress failed: %v", err)
	}
	if user.LikeCount != n {
		t.Errorf("Expected %d likes, got %d", n, user.LikeCount)
	}
	if user.TotalEngagement != n {
		t.Errorf("Expected total %d, got %d", n, user.TotalEngagement)
	}
}

func TestClaimContentCreatorPreservesCounters(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordLike("0xAA", "0xC1"); err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	if _, _, err := ledger.RecordComment("0xAA", "0xC1", "hello"); err != nil {
		t.Fatalf("RecordComment failed: %v", err)
	}

	if err := ledger.ClaimContentCreator("0xC1", "0xBB"); err != nil {
		t.Fatalf("ClaimContentCreator failed: %v", err)
	}

	content, err := database.DB.GetContentByBlobID(mustNormalize(t, "0xC1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != mustNormalize(t, "0xBB") {
		t.Errorf("Expected claimed creator, got %q", content.CreatorAddress)
	}
	if content.TotalLikes != 1 || content.TotalComments != 1 || content.TotalEngagement != 2 {
		t.Errorf("Expected counters preserved through claim, got likes=%d comments=%d total=%d",
			content.TotalLikes, content.TotalComments, content.TotalEngagement)
	}

	// A second claim with a different creator is a no-op
	if err := ledger.ClaimContentCreator("0xC1", "0xCC"); err != nil {
		t.Fatalf("ClaimContentCreator failed: %v", err)
	}
	content, err = database.DB.GetContentByBlobID(mustNormalize(t, "0xC1"))
	if err != nil {
		t.Fatalf("GetContentByBlobID failed: %v", err)
	}
	if content.CreatorAddress != mustNormalize(t, "0xBB") {
		t.Errorf("Expected first creator kept, got %q", content.CreatorAddress)
	}
}

func TestMirrorCreatorLeavesCountersAlone(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordLike("0xAA", "0xC1"); err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}

	if err := ledger.MirrorCreator("0xAA"); err != nil {
		t.Fatalf("MirrorCreator failed: %v", err)
	}

	user, err := database.DB.GetCreatorByAddress(mustNormalize(t, "0xAA"))
	if err != nil {
		t.Fatalf("GetCreatorByAddress failed: %v", err)
	}
	if user.LikeCount != 1 || user.TotalEngagement != 1 {
		t.Errorf("Expected counters untouched by mirror, got likes=%d total=%d",
			user.LikeCount, user.TotalEngagement)
	}

	// Mirroring an unknown creator provisions an empty record
	if err := ledger.MirrorCreator("0xBB"); err != nil {
		t.Fatalf("MirrorCreator failed: %v", err)
	}
	if _, err := database.DB.GetCreatorByAddress(mustNormalize(t, "0xBB")); err != nil {
		t.Errorf("Expected mirrored creator to exist, got %v", err)
	}
}

func TestTotalEngagementFreshAfterWrite(t *testing.T) {
	ledger := setupLedger(t)

	if _, _, err := ledger.RecordLike("0xAA", "0xC1"); err != nil {
		t.Fatalf("RecordLike failed: %v", err)
	}
	total, err := ledger.GetTotalEngagement("0xC1", KindContent)
	if err != nil {
		t.Fatalf("GetTotalEngagement failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected total 1, got %d", total)
	}

	// The write invalidates under the record's stripe lock, so the next read
	// must see the new total
	if _, _, err := ledger.RecordComment("0xBB", "0xC1", "hello"); err != nil {
		t.Fatalf("RecordComment failed: %v", err)
	}
	total, err = ledger.GetTotalEngagement("0xC1", KindContent)
	if err != nil {
		t.Fatalf("GetTotalEngagement failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected total 2 after comment, got %d", total)
	}
}
