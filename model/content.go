package model

import "time"

// Content off-chain engagement record for a content item.
//
// BlobID is the content-addressed blob identifier; the record only ever stores
// and passes through the identifier string, never the content bytes.
type Content struct {
	BlobID         string `gorm:"primaryKey;type:varchar(66)" json:"blob_id"`        // Content blob ID
	CreatorAddress string `gorm:"index;type:varchar(66);not null" json:"creator_id"` // Owning creator

	TotalLikes      int64 `gorm:"default:0" json:"total_likes"`      // Size of the likedBy set
	TotalComments   int64 `gorm:"default:0" json:"total_comments"`   // Comment count
	TotalEngagement int64 `gorm:"default:0" json:"total_engagement"` // likes + comments

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specify table name
func (Content) TableName() string {
	return "tb_content"
}

// RecomputeTotal recompute the derived engagement total from its components
func (c *Content) RecomputeTotal() {
	c.TotalEngagement = c.TotalLikes + c.TotalComments
}

// Comment immutable comment on a content item. No edit or delete exists.
type Comment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlobID        string    `gorm:"index;type:varchar(66);not null" json:"blob_id"`
	AuthorAddress string    `gorm:"index;type:varchar(66);not null" json:"author_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specify table name
func (Comment) TableName() string {
	return "tb_comment"
}
