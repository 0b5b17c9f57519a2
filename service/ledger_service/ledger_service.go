package ledger_service

import (
	"errors"
	"fmt"
	"strings"

	"creator-engagement-system/common"
	"creator-engagement-system/database"
	"creator-engagement-system/model"
)

var (
	// ErrEmptyComment comment text is required
	ErrEmptyComment = errors.New("comment text must not be empty")
	// ErrSelfFollow a creator cannot follow themselves
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// EngagementKind record namespace for total-engagement reads
type EngagementKind string

const (
	KindCreator EngagementKind = "creator"
	KindContent EngagementKind = "content"
)

// LedgerService single writer of all engagement state.
//
// Every operation serializes per identifier through striped keyed locks, and
// every counter is recomputed from the authoritative like/comment/follow sets
// while the lock is held, so duplicate or out-of-order requests can never
// double-count or drive a counter negative.
type LedgerService struct {
	locks *keyedMutex
}

// All ledger instances share one lock table, so every writer of a record,
// the registry mirror included, serializes on the same stripe.
var sharedLocks = newKeyedMutex()

// NewLedgerService create ledger service instance
func NewLedgerService() *LedgerService {
	return &LedgerService{locks: sharedLocks}
}

// RegisterCreator explicitly register a creator with a display name.
// Fails with database.ErrAlreadyExists when the address is taken.
func (s *LedgerService) RegisterCreator(address, name string) (*model.Creator, error) {
	address, err := common.NormalizeIdentifier(address)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(address)
	defer unlock()

	creator := &model.Creator{Address: address, Name: name}
	if err := database.DB.CreateCreator(creator); err != nil {
		return nil, err
	}
	return creator, nil
}

// RegisterContent explicitly register a content item under an existing creator.
// Fails with database.ErrNotFound when the creator is unknown and with
// database.ErrAlreadyExists when the blob ID is taken.
func (s *LedgerService) RegisterContent(blobID, creatorAddress string) (*model.Content, error) {
	blobID, creatorAddress, err := normalizePair(blobID, creatorAddress)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.LockPair(blobID, creatorAddress)
	defer unlock()

	if _, err := database.DB.GetCreatorByAddress(creatorAddress); err != nil {
		return nil, err
	}

	// A record that only exists because engagement referenced it before
	// registration has no creator yet; registration claims it.
	if existing, err := database.DB.GetContentByBlobID(blobID); err == nil {
		if existing.CreatorAddress != "" {
			return nil, database.ErrAlreadyExists
		}
		existing.CreatorAddress = creatorAddress
		if err := database.DB.UpdateContent(existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	content := &model.Content{BlobID: blobID, CreatorAddress: creatorAddress}
	if err := database.DB.CreateContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

// MirrorCreator create-if-absent mirror of a registry-listed creator. An
// existing record is left untouched, counters included.
func (s *LedgerService) MirrorCreator(address string) error {
	address, err := common.NormalizeIdentifier(address)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(address)
	defer unlock()

	_, err = s.getOrCreateCreator(address)
	return err
}

// ClaimContentCreator set the creator on a lazily created content record, or
// mirror the record when it does not exist yet. The record is re-read under
// its stripe lock and only the creator field changes, so a concurrent counter
// refresh is never rolled back. A record that already has a creator is left
// alone.
func (s *LedgerService) ClaimContentCreator(blobID, creatorAddress string) error {
	blobID, err := common.NormalizeIdentifier(blobID)
	if err != nil {
		return err
	}
	if creatorAddress != "" {
		if creatorAddress, err = common.NormalizeIdentifier(creatorAddress); err != nil {
			return err
		}
	}

	unlock := s.locks.Lock(blobID)
	defer unlock()

	existing, err := database.DB.GetContentByBlobID(blobID)
	if err == nil {
		if existing.CreatorAddress != "" || creatorAddress == "" {
			return nil
		}
		existing.CreatorAddress = creatorAddress
		return database.DB.UpdateContent(existing)
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	err = database.DB.CreateContent(&model.Content{BlobID: blobID, CreatorAddress: creatorAddress})
	if errors.Is(err, database.ErrAlreadyExists) {
		return nil
	}
	return err
}

// RecordLike insert the liker into the content's likedBy set. Re-invoking with
// the same pair is a no-op, not an error. Both records are created lazily on
// first reference; a lazily created content item carries no creator until it
// is registered or the registry sync resolves it.
func (s *LedgerService) RecordLike(userAddress, blobID string) (*model.Content, *model.Creator, error) {
	userAddress, blobID, err := normalizePair(userAddress, blobID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.LockPair(userAddress, blobID)
	defer unlock()

	content, err := s.getOrCreateContent(blobID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.getOrCreateCreator(userAddress)
	if err != nil {
		return nil, nil, err
	}

	if _, err := database.DB.AddContentLike(blobID, userAddress); err != nil {
		return nil, nil, err
	}

	if err := s.refreshContent(content); err != nil {
		return nil, nil, err
	}
	if err := s.refreshCreator(user); err != nil {
		return nil, nil, err
	}
	return content, user, nil
}

// RecordUnlike remove the liker from the content's likedBy set. Absent pairs
// are a no-op; counters are recomputed from the set so they can never go
// negative, even for an unlike without a preceding like.
func (s *LedgerService) RecordUnlike(userAddress, blobID string) (*model.Content, *model.Creator, error) {
	userAddress, blobID, err := normalizePair(userAddress, blobID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.LockPair(userAddress, blobID)
	defer unlock()

	content, err := database.DB.GetContentByBlobID(blobID)
	if err != nil {
		return nil, nil, err
	}
	user, err := database.DB.GetCreatorByAddress(userAddress)
	if err != nil {
		return nil, nil, err
	}

	if _, err := database.DB.RemoveContentLike(blobID, userAddress); err != nil {
		return nil, nil, err
	}

	if err := s.refreshContent(content); err != nil {
		return nil, nil, err
	}
	if err := s.refreshCreator(user); err != nil {
		return nil, nil, err
	}
	return content, user, nil
}

// RecordComment append an immutable comment with a server-assigned timestamp.
// The comment is credited to the commenting user's comment count; both the
// content's and the commenter's totals are recomputed.
func (s *LedgerService) RecordComment(userAddress, blobID, text string) (*model.Content, *model.Creator, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrEmptyComment
	}
	userAddress, blobID, err := normalizePair(userAddress, blobID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.LockPair(userAddress, blobID)
	defer unlock()

	content, err := s.getOrCreateContent(blobID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.getOrCreateCreator(userAddress)
	if err != nil {
		return nil, nil, err
	}

	comment := &model.Comment{BlobID: blobID, AuthorAddress: userAddress, Text: text}
	if err := database.DB.AddComment(comment); err != nil {
		return nil, nil, err
	}

	if err := s.refreshContent(content); err != nil {
		return nil, nil, err
	}
	if err := s.refreshCreator(user); err != nil {
		return nil, nil, err
	}
	return content, user, nil
}

// RecordFollow add the directed follow edge if not already present. Self-follow
// is rejected before any state is touched.
func (s *LedgerService) RecordFollow(followerAddress, followeeAddress string) (*model.Creator, *model.Creator, error) {
	followerAddress, followeeAddress, err := normalizePair(followerAddress, followeeAddress)
	if err != nil {
		return nil, nil, err
	}
	if followerAddress == followeeAddress {
		return nil, nil, ErrSelfFollow
	}

	unlock := s.locks.LockPair(followerAddress, followeeAddress)
	defer unlock()

	follower, err := database.DB.GetCreatorByAddress(followerAddress)
	if err != nil {
		return nil, nil, err
	}
	followee, err := database.DB.GetCreatorByAddress(followeeAddress)
	if err != nil {
		return nil, nil, err
	}

	if _, err := database.DB.AddFollow(followerAddress, followeeAddress); err != nil {
		return nil, nil, err
	}

	if err := s.refreshCreator(follower); err != nil {
		return nil, nil, err
	}
	if err := s.refreshCreator(followee); err != nil {
		return nil, nil, err
	}
	return follower, followee, nil
}

// GetTotalEngagement read the current derived total for a creator or content
// record, serving from cache when possible. The read-through runs under the
// record's stripe lock and writers invalidate under the same lock, so a cached
// value is never written from a stale read.
func (s *LedgerService) GetTotalEngagement(id string, kind EngagementKind) (int64, error) {
	id, err := common.NormalizeIdentifier(id)
	if err != nil {
		return 0, err
	}

	var cacheKey string
	switch kind {
	case KindCreator:
		cacheKey = CreatorCacheKey(id)
	case KindContent:
		cacheKey = ContentCacheKey(id)
	default:
		return 0, fmt.Errorf("unknown engagement kind: %s", kind)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var cached int64
	if err := database.GetCache(cacheKey, &cached); err == nil {
		return cached, nil
	}

	var total int64
	if kind == KindCreator {
		creator, err := database.DB.GetCreatorByAddress(id)
		if err != nil {
			return 0, err
		}
		total = creator.TotalEngagement
	} else {
		content, err := database.DB.GetContentByBlobID(id)
		if err != nil {
			return 0, err
		}
		total = content.TotalEngagement
	}

	database.SetCache(cacheKey, total)
	return total, nil
}

// getOrCreateCreator create-if-absent lookup for lazily provisioned accounts
func (s *LedgerService) getOrCreateCreator(address string) (*model.Creator, error) {
	creator, err := database.DB.GetCreatorByAddress(address)
	if err == nil {
		return creator, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	creator = &model.Creator{Address: address}
	if err := database.DB.CreateCreator(creator); err != nil {
		// Lost a creation race; the record exists now.
		if errors.Is(err, database.ErrAlreadyExists) {
			return database.DB.GetCreatorByAddress(address)
		}
		return nil, err
	}
	return creator, nil
}

// getOrCreateContent create-if-absent lookup for content referenced before
// registration. The creator stays empty until registration or registry sync
// resolves it.
func (s *LedgerService) getOrCreateContent(blobID string) (*model.Content, error) {
	content, err := database.DB.GetContentByBlobID(blobID)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	content = &model.Content{BlobID: blobID}
	if err := database.DB.CreateContent(content); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return database.DB.GetContentByBlobID(blobID)
		}
		return nil, err
	}
	return content, nil
}

// refreshContent recompute the content's counters from the like and comment
// sets and persist the record. Called with the content's lock held.
func (s *LedgerService) refreshContent(content *model.Content) error {
	likes, err := database.DB.GetContentLikeCount(content.BlobID)
	if err != nil {
		return err
	}
	comments, err := database.DB.GetCommentCountByBlobID(content.BlobID)
	if err != nil {
		return err
	}

	content.TotalLikes = likes
	content.TotalComments = comments
	content.RecomputeTotal()

	if err := database.DB.UpdateContent(content); err != nil {
		return err
	}
	invalidateContentCache(content.BlobID)
	return nil
}

// refreshCreator recompute the creator's counters from the like, comment and
// follow sets and persist the record. Called with the creator's lock held.
func (s *LedgerService) refreshCreator(creator *model.Creator) error {
	likes, err := database.DB.GetLikeCountByAddress(creator.Address)
	if err != nil {
		return err
	}
	comments, err := database.DB.GetCommentCountByAddress(creator.Address)
	if err != nil {
		return err
	}
	followers, err := database.DB.GetFollowerCount(creator.Address)
	if err != nil {
		return err
	}
	following, err := database.DB.GetFollowingCount(creator.Address)
	if err != nil {
		return err
	}

	creator.LikeCount = likes
	creator.CommentCount = comments
	creator.FollowerCount = followers
	creator.FollowingCount = following
	creator.RecomputeTotal()

	if err := database.DB.UpdateCreator(creator); err != nil {
		return err
	}
	invalidateCreatorCache(creator.Address)
	return nil
}

func normalizePair(a, b string) (string, string, error) {
	na, err := common.NormalizeIdentifier(a)
	if err != nil {
		return "", "", err
	}
	nb, err := common.NormalizeIdentifier(b)
	if err != nil {
		return "", "", err
	}
	return na, nb, nil
}

// CreatorCacheKey redis key for a creator's engagement total
func CreatorCacheKey(address string) string {
	return "engagement:creator:" + address
}

// ContentCacheKey redis key for a content item's engagement total
func ContentCacheKey(blobID string) string {
	return "engagement:content:" + blobID
}

func invalidateCreatorCache(address string) {
	database.DeleteCache(CreatorCacheKey(address))
}

func invalidateContentCache(blobID string) {
	database.DeleteCache(ContentCacheKey(blobID))
}
