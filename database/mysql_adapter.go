package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"creator-engagement-system/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MySQLDatabase MySQL database implementation
type MySQLDatabase struct {
	db *gorm.DB
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewMySQLDatabase create MySQL database instance
func NewMySQLDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*MySQLConfig)
	if !ok {
		return nil, fmt.Errorf("invalid MySQL config type")
	}

	// Connect database
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect MySQL: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Migrate engagement tables
	if err := db.AutoMigrate(
		&model.Creator{},
		&model.Content{},
		&model.ContentLike{},
		&model.Comment{},
		&model.Follow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	log.Println("MySQL database connected successfully")

	return &MySQLDatabase{db: db}, nil
}

// Creator operations

func (m *MySQLDatabase) CreateCreator(creator *model.Creator) error {
	err := m.db.Create(creator).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}

func (m *MySQLDatabase) GetCreatorByAddress(address string) (*model.Creator, error) {
	var creator model.Creator
	err := m.db.Where("address = ?", address).First(&creator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &creator, err
}

func (m *MySQLDatabase) UpdateCreator(creator *model.Creator) error {
	return m.db.Save(creator).Error
}

func (m *MySQLDatabase) GetCreatorsByAddresses(addresses []string) ([]*model.Creator, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	var creators []*model.Creator
	err := m.db.Where("address IN ?", addresses).Find(&creators).Error
	return creators, err
}

// Content operations

func (m *MySQLDatabase) CreateContent(content *model.Content) error {
	err := m.db.Create(content).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}

func (m *MySQLDatabase) GetContentByBlobID(blobID string) (*model.Content, error) {
	var content model.Content
	err := m.db.Where("blob_id = ?", blobID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &content, err
}

func (m *MySQLDatabase) UpdateContent(content *model.Content) error {
	return m.db.Save(content).Error
}

func (m *MySQLDatabase) GetContentsByBlobIDs(blobIDs []string) ([]*model.Content, error) {
	if len(blobIDs) == 0 {
		return nil, nil
	}
	var contents []*model.Content
	err := m.db.Where("blob_id IN ?", blobIDs).Find(&contents).Error
	return contents, err
}

func (m *MySQLDatabase) GetContentsByCreator(address string) ([]*model.Content, error) {
	var contents []*model.Content
	err := m.db.Where("creator_address = ?", address).
		Order("created_at ASC").
		Find(&contents).Error
	return contents, err
}

// Like operations

func (m *MySQLDatabase) AddContentLike(blobID, address string) (bool, error) {
	// The composite unique index makes the insert a no-op when the pair exists;
	// RowsAffected tells the ledger whether the like was net-new.
	result := m.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ContentLike{BlobID: blobID, Address: address})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m *MySQLDatabase) RemoveContentLike(blobID, address string) (bool, error) {
	result := m.db.Where("blob_id = ? AND address = ?", blobID, address).
		Delete(&model.ContentLike{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m *MySQLDatabase) GetContentLikeCount(blobID string) (int64, error) {
	var count int64
	err := m.db.Model(&model.ContentLike{}).
		Where("blob_id = ?", blobID).
		Count(&count).Error
	return count, err
}

func (m *MySQLDatabase) GetLikeCountByAddress(address string) (int64, error) {
	var count int64
	err := m.db.Model(&model.ContentLike{}).
		Where("address = ?", address).
		Count(&count).Error
	return count, err
}

// Comment operations

func (m *MySQLDatabase) AddComment(comment *model.Comment) error {
	return m.db.Create(comment).Error
}

func (m *MySQLDatabase) GetCommentsByBlobID(blobID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := m.db.Where("blob_id = ?", blobID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (m *MySQLDatabase) GetCommentCountByBlobID(blobID string) (int64, error) {
	var count int64
	err := m.db.Model(&model.Comment{}).
		Where("blob_id = ?", blobID).
		Count(&count).Error
	return count, err
}

func (m *MySQLDatabase) GetCommentCountByAddress(address string) (int64, error) {
	var count int64
	err := m.db.Model(&model.Comment{}).
		Where("author_address = ?", address).
		Count(&count).Error
	return count, err
}

// Follow operations

func (m *MySQLDatabase) AddFollow(followerAddress, followeeAddress string) (bool, error) {
	result := m.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Follow{FollowerAddress: followerAddress, FolloweeAddress: followeeAddress})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m *MySQLDatabase) GetFollowerCount(address string) (int64, error) {
	var count int64
	err := m.db.Model(&model.Follow{}).
		Where("followee_address = ?", address).
		Count(&count).Error
	return count, err
}

func (m *MySQLDatabase) GetFollowingCount(address string) (int64, error) {
	var count int64
	err := m.db.Model(&model.Follow{}).
		Where("follower_address = ?", address).
		Count(&count).Error
	return count, err
}

// Close close database connection
func (m *MySQLDatabase) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetGormDB get underlying GORM database instance
func (m *MySQLDatabase) GetGormDB() *gorm.DB {
	return m.db
}
