package model

import "time"

// Creator off-chain engagement record for a creator/user account.
//
// Address is the wallet address (canonical 0x + 64 hex identifier) supplied by
// the wallet login provider; it is trusted as given. All counters are derived
// from the like/comment/follow tables and recomputed by the ledger on every
// mutation -- TotalEngagement is never set independently.
type Creator struct {
	Address string `gorm:"primaryKey;type:varchar(66)" json:"address"` // Wallet address
	Name    string `gorm:"type:varchar(255)" json:"name"`              // Display name

	LikeCount       int64 `gorm:"default:0" json:"like_count"`       // Distinct content items liked
	CommentCount    int64 `gorm:"default:0" json:"comment_count"`    // Comments authored
	FollowerCount   int64 `gorm:"default:0" json:"follower_count"`   // Followers
	FollowingCount  int64 `gorm:"default:0" json:"following_count"`  // Accounts followed
	TotalEngagement int64 `gorm:"default:0" json:"total_engagement"` // like + comment + follower counts

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specify table name
func (Creator) TableName() string {
	return "tb_creator"
}

// RecomputeTotal recompute the derived engagement total from its components
func (c *Creator) RecomputeTotal() {
	c.TotalEngagement = c.LikeCount + c.CommentCount + c.FollowerCount
}
