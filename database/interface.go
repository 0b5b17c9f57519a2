package database

import (
	"creator-engagement-system/model"
)

// Database interface for different database implementations.
//
// Set-valued operations (likes, follows) are idempotent at this layer: Add*
// returns whether the entry was net-new, Remove* whether it was present. The
// ledger relies on those booleans to keep counters exact under retries and
// concurrent duplicates.
type Database interface {
	// Creator operations
	CreateCreator(creator *model.Creator) error
	GetCreatorByAddress(address string) (*model.Creator, error)
	UpdateCreator(creator *model.Creator) error
	GetCreatorsByAddresses(addresses []string) ([]*model.Creator, error)

	// Content operations
	CreateContent(content *model.Content) error
	GetContentByBlobID(blobID string) (*model.Content, error)
	UpdateContent(content *model.Content) error
	GetContentsByBlobIDs(blobIDs []string) ([]*model.Content, error)
	GetContentsByCreator(address string) ([]*model.Content, error)

	// Like operations
	AddContentLike(blobID, address string) (bool, error)
	RemoveContentLike(blobID, address string) (bool, error)
	GetContentLikeCount(blobID string) (int64, error)
	GetLikeCountByAddress(address string) (int64, error)

	// Comment operations
	AddComment(comment *model.Comment) error
	GetCommentsByBlobID(blobID string) ([]*model.Comment, error)
	GetCommentCountByBlobID(blobID string) (int64, error)
	GetCommentCountByAddress(address string) (int64, error)

	// Follow operations
	AddFollow(followerAddress, followeeAddress string) (bool, error)
	GetFollowerCount(address string) (int64, error)
	GetFollowingCount(address string) (int64, error)

	// General operations
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypePebble DBType = "pebble"
)

// Global database instance
var DB Database

// currentDBType stores the current database type
var currentDBType DBType

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypeMySQL:
		DB, err = NewMySQLDatabase(config)
		currentDBType = DBTypeMySQL
	case DBTypePebble:
		DB, err = NewPebbleDatabase(config)
		currentDBType = DBTypePebble
	default:
		return ErrUnsupportedDBType
	}

	return err
}

// GetDBType get current database type
func GetDBType() DBType {
	return currentDBType
}
