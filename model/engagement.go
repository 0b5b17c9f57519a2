package model

import "time"

// ContentLike one entry of a content item's likedBy set. The composite unique
// index is what makes likes idempotent at the storage layer.
type ContentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlobID    string    `gorm:"index;type:varchar(66);not null;uniqueIndex:idx_blob_addr" json:"blob_id"`
	Address   string    `gorm:"index;type:varchar(66);not null;uniqueIndex:idx_blob_addr" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specify table name
func (ContentLike) TableName() string {
	return "tb_content_like"
}

// Follow directed, deduplicated follow edge. Every edge appears exactly once;
// follower/following counts on both creators are derived from this table.
type Follow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerAddress string    `gorm:"index;type:varchar(66);not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeAddress string    `gorm:"index;type:varchar(66);not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specify table name
func (Follow) TableName() string {
	return "tb_follow"
}
