package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"creator-engagement-system/model"

	"github.com/cockroachdb/pebble"
)

// PebbleDatabase PebbleDB database implementation with multiple collections
type PebbleDatabase struct {
	collections map[string]*pebble.DB // Map of collection name to PebbleDB instance

	commentIDCounter atomic.Int64
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
}

// Collection names and their key-value formats
const (
	// Creator collections
	collectionCreator = "creator" // key: {address}, value: JSON(Creator)

	// Content collections
	collectionContent          = "content"         // key: {blob_id}, value: JSON(Content)
	collectionContentByCreator = "content_creator" // key: {creator_address}:{blob_id}, value: blob_id

	// Like collections (both directions of the likedBy set)
	collectionLikeByBlob = "like_blob" // key: {blob_id}:{address}, value: JSON(ContentLike)
	collectionLikeByAddr = "like_addr" // key: {address}:{blob_id}, value: blob_id

	// Comment collections
	collectionCommentByBlob = "comment_blob" // key: {blob_id}:{seq}, value: JSON(Comment), seq zero-padded for order
	collectionCommentByAddr = "comment_addr" // key: {address}:{seq}, value: blob_id

	// Follow collections (both directions of the edge)
	collectionFollow    = "follow"     // key: {follower}:{followee}, value: JSON(Follow)
	collectionFollowRev = "follow_rev" // key: {followee}:{follower}, value: follower

	// System collections
	collectionCounters = "counters" // key: comment, value: {max_id} - ID counter
)

// Counter keys
const (
	keyCommentCounter = "comment"
)

// NewPebbleDatabase create PebbleDB database instance with multiple collections
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	if err := os.MkdirAll(cfg.DataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	collectionNames := []string{
		collectionCreator,
		collectionContent,
		collectionContentByCreator,
		collectionLikeByBlob,
		collectionLikeByAddr,
		collectionCommentByBlob,
		collectionCommentByAddr,
		collectionFollow,
		collectionFollowRev,
		collectionCounters,
	}

	// Open PebbleDB for each collection
	collections := make(map[string]*pebble.DB)
	for _, name := range collectionNames {
		collectionPath := filepath.Join(cfg.DataDir, "engagement_db", name)

		db, err := pebble.Open(collectionPath, &pebble.Options{})
		if err != nil {
			// Close previously opened databases
			for _, openedDB := range collections {
				openedDB.Close()
			}
			return nil, fmt.Errorf("failed to open collection %s at %s: %w", name, collectionPath, err)
		}
		collections[name] = db
	}

	pdb := &PebbleDatabase{
		collections: collections,
	}

	// Load counters
	if val, closer, err := collections[collectionCounters].Get([]byte(keyCommentCounter)); err == nil {
		count, _ := strconv.ParseInt(string(val), 10, 64)
		pdb.commentIDCounter.Store(count)
		closer.Close()
	}

	log.Printf("PebbleDB database connected successfully with %d collections", len(collections))
	return pdb, nil
}

// Creator operations

func (p *PebbleDatabase) CreateCreator(creator *model.Creator) error {
	db := p.collections[collectionCreator]

	_, closer, err := db.Get([]byte(creator.Address))
	if err == nil {
		closer.Close()
		return ErrAlreadyExists
	}
	if err != pebble.ErrNotFound {
		return err
	}

	data, err := json.Marshal(creator)
	if err != nil {
		return err
	}
	return db.Set([]byte(creator.Address), data, pebble.Sync)
}

func (p *PebbleDatabase) GetCreatorByAddress(address string) (*model.Creator, error) {
	data, closer, err := p.collections[collectionCreator].Get([]byte(address))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var creator model.Creator
	if err := json.Unmarshal(data, &creator); err != nil {
		return nil, err
	}
	return &creator, nil
}

func (p *PebbleDatabase) UpdateCreator(creator *model.Creator) error {
	data, err := json.Marshal(creator)
	if err != nil {
		return err
	}
	return p.collections[collectionCreator].Set([]byte(creator.Address), data, pebble.Sync)
}

func (p *PebbleDatabase) GetCreatorsByAddresses(addresses []string) ([]*model.Creator, error) {
	var creators []*model.Creator
	for _, address := range addresses {
		creator, err := p.GetCreatorByAddress(address)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		creators = append(creators, creator)
	}
	return creators, nil
}

// Content operations

func (p *PebbleDatabase) CreateContent(content *model.Content) error {
	db := p.collections[collectionContent]

	_, closer, err := db.Get([]byte(content.BlobID))
	if err == nil {
		closer.Close()
		return ErrAlreadyExists
	}
	if err != pebble.ErrNotFound {
		return err
	}

	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	if err := db.Set([]byte(content.BlobID), data, pebble.Sync); err != nil {
		return err
	}
	return p.indexContentCreator(content)
}

// indexContentCreator maintain the creator index entry. Lazily created content
// has no creator yet; the entry is written once registration resolves it.
func (p *PebbleDatabase) indexContentCreator(content *model.Content) error {
	if content.CreatorAddress == "" {
		return nil
	}
	// key: creator_address:blob_id
	creatorKey := content.CreatorAddress + ":" + content.BlobID
	return p.collections[collectionContentByCreator].Set([]byte(creatorKey), []byte(content.BlobID), pebble.Sync)
}

func (p *PebbleDatabase) GetContentByBlobID(blobID string) (*model.Content, error) {
	data, closer, err := p.collections[collectionContent].Get([]byte(blobID))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var content model.Content
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (p *PebbleDatabase) UpdateContent(content *model.Content) error {
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	if err := p.collections[collectionContent].Set([]byte(content.BlobID), data, pebble.Sync); err != nil {
		return err
	}
	return p.indexContentCreator(content)
}

func (p *PebbleDatabase) GetContentsByBlobIDs(blobIDs []string) ([]*model.Content, error) {
	var contents []*model.Content
	for _, blobID := range blobIDs {
		content, err := p.GetContentByBlobID(blobID)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, nil
}

func (p *PebbleDatabase) GetContentsByCreator(address string) ([]*model.Content, error) {
	blobIDs, err := p.prefixValues(collectionContentByCreator, address+":")
	if err != nil {
		return nil, err
	}
	return p.GetContentsByBlobIDs(blobIDs)
}

// Like operations

func (p *PebbleDatabase) AddContentLike(blobID, address string) (bool, error) {
	blobDB := p.collections[collectionLikeByBlob]
	key := blobID + ":" + address

	// Membership check makes the add idempotent
	_, closer, err := blobDB.Get([]byte(key))
	if err == nil {
		closer.Close()
		return false, nil
	}
	if err != pebble.ErrNotFound {
		return false, err
	}

	data, err := json.Marshal(&model.ContentLike{BlobID: blobID, Address: address})
	if err != nil {
		return false, err
	}
	if err := blobDB.Set([]byte(key), data, pebble.Sync); err != nil {
		return false, err
	}

	addrKey := address + ":" + blobID
	if err := p.collections[collectionLikeByAddr].Set([]byte(addrKey), []byte(blobID), pebble.Sync); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleDatabase) RemoveContentLike(blobID, address string) (bool, error) {
	blobDB := p.collections[collectionLikeByBlob]
	key := blobID + ":" + address

	_, closer, err := blobDB.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()

	if err := blobDB.Delete([]byte(key), pebble.Sync); err != nil {
		return false, err
	}
	addrKey := address + ":" + blobID
	if err := p.collections[collectionLikeByAddr].Delete([]byte(addrKey), pebble.Sync); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleDatabase) GetContentLikeCount(blobID string) (int64, error) {
	return p.prefixCount(collectionLikeByBlob, blobID+":")
}

func (p *PebbleDatabase) GetLikeCountByAddress(address string) (int64, error) {
	return p.prefixCount(collectionLikeByAddr, address+":")
}

// Comment operations

func (p *PebbleDatabase) AddComment(comment *model.Comment) error {
	// Zero-padded sequence keeps the blob's comments in insertion order under
	// lexicographic iteration.
	seq := p.commentIDCounter.Add(1)
	comment.ID = seq

	data, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	blobKey := fmt.Sprintf("%s:%020d", comment.BlobID, seq)
	if err := p.collections[collectionCommentByBlob].Set([]byte(blobKey), data, pebble.Sync); err != nil {
		return err
	}

	addrKey := fmt.Sprintf("%s:%020d", comment.AuthorAddress, seq)
	if err := p.collections[collectionCommentByAddr].Set([]byte(addrKey), []byte(comment.BlobID), pebble.Sync); err != nil {
		return err
	}

	// Persist counter
	return p.collections[collectionCounters].Set(
		[]byte(keyCommentCounter), []byte(strconv.FormatInt(seq, 10)), pebble.Sync)
}

func (p *PebbleDatabase) GetCommentsByBlobID(blobID string) ([]*model.Comment, error) {
	iter, err := p.prefixIter(collectionCommentByBlob, blobID+":")
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var comments []*model.Comment
	for iter.First(); iter.Valid(); iter.Next() {
		var comment model.Comment
		if err := json.Unmarshal(iter.Value(), &comment); err != nil {
			continue
		}
		commentCopy := comment
		comments = append(comments, &commentCopy)
	}
	return comments, nil
}

func (p *PebbleDatabase) GetCommentCountByBlobID(blobID string) (int64, error) {
	return p.prefixCount(collectionCommentByBlob, blobID+":")
}

func (p *PebbleDatabase) GetCommentCountByAddress(address string) (int64, error) {
	return p.prefixCount(collectionCommentByAddr, address+":")
}

// Follow operations

func (p *PebbleDatabase) AddFollow(followerAddress, followeeAddress string) (bool, error) {
	followDB := p.collections[collectionFollow]
	key := followerAddress + ":" + followeeAddress

	_, closer, err := followDB.Get([]byte(key))
	if err == nil {
		closer.Close()
		return false, nil
	}
	if err != pebble.ErrNotFound {
		return false, err
	}

	data, err := json.Marshal(&model.Follow{FollowerAddress: followerAddress, FolloweeAddress: followeeAddress})
	if err != nil {
		return false, err
	}
	if err := followDB.Set([]byte(key), data, pebble.Sync); err != nil {
		return false, err
	}

	revKey := followeeAddress + ":" + followerAddress
	if err := p.collections[collectionFollowRev].Set([]byte(revKey), []byte(followerAddress), pebble.Sync); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleDatabase) GetFollowerCount(address string) (int64, error) {
	return p.prefixCount(collectionFollowRev, address+":")
}

func (p *PebbleDatabase) GetFollowingCount(address string) (int64, error) {
	return p.prefixCount(collectionFollow, address+":")
}

// Close close all collection databases
func (p *PebbleDatabase) Close() error {
	var lastErr error
	for name, db := range p.collections {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close collection %s: %v", name, err)
			lastErr = err
		}
	}
	return lastErr
}

// prefixIter create an iterator over every key starting with prefix
func (p *PebbleDatabase) prefixIter(collection, prefix string) (*pebble.Iterator, error) {
	return p.collections[collection].NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "~"),
	})
}

// prefixCount count keys starting with prefix
func (p *PebbleDatabase) prefixCount(collection, prefix string) (int64, error) {
	iter, err := p.prefixIter(collection, prefix)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var count int64
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// prefixValues collect the values of every key starting with prefix
func (p *PebbleDatabase) prefixValues(collection, prefix string) ([]string, error) {
	iter, err := p.prefixIter(collection, prefix)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var values []string
	for iter.First(); iter.Valid(); iter.Next() {
		values = append(values, string(iter.Value()))
	}
	return values, nil
}
