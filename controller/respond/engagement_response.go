package respond

import (
	"time"

	"creator-engagement-system/model"
	"creator-engagement-system/service/registry_service"
)

// CreatorResponse creator information response structure
type CreatorResponse struct {
	Address         string    `json:"address" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	Name            string    `json:"name" example:"alice"`
	LikeCount       int64     `json:"like_count" example:"10"`
	CommentCount    int64     `json:"comment_count" example:"4"`
	FollowerCount   int64     `json:"follower_count" example:"7"`
	FollowingCount  int64     `json:"following_count" example:"3"`
	TotalEngagement int64     `json:"total_engagement" example:"21"`
	CreatedAt       time.Time `json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt       time.Time `json:"updated_at" example:"2024-01-01T00:00:00Z"`
}

// ContentResponse content information response structure
type ContentResponse struct {
	BlobID          string    `json:"blob_id" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
	CreatorAddress  string    `json:"creator_id" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	TotalLikes      int64     `json:"total_likes" example:"5"`
	TotalComments   int64     `json:"total_comments" example:"2"`
	TotalEngagement int64     `json:"total_engagement" example:"7"`
	CreatedAt       time.Time `json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt       time.Time `json:"updated_at" example:"2024-01-01T00:00:00Z"`
}

// CommentResponse comment response structure
type CommentResponse struct {
	ID            int64     `json:"id" example:"1"`
	BlobID        string    `json:"blob_id" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
	AuthorAddress string    `json:"author_id" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	Text          string    `json:"text" example:"great post"`
	CreatedAt     time.Time `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// EngagementTotalResponse aggregated engagement total response
type EngagementTotalResponse struct {
	ID              string `json:"id" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	TotalEngagement int64  `json:"total_engagement" example:"21"`
}

// CreatorListResponse creator list response structure
type CreatorListResponse struct {
	Creators []CreatorResponse `json:"creators"`
	Total    int               `json:"total" example:"2"`
}

// ContentListResponse content list response structure
type ContentListResponse struct {
	Contents []ContentResponse `json:"contents"`
	Total    int               `json:"total" example:"2"`
}

// CommentListResponse comment list response structure
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total" example:"2"`
}

// SyncStatusResponse registry sync status response structure
type SyncStatusResponse struct {
	Enabled          bool      `json:"enabled" example:"true"`
	LastSyncAt       time.Time `json:"last_sync_at" example:"2024-01-01T00:00:00Z"`
	CreatorsTracked  int       `json:"creators_tracked" example:"100"`
	ContentsTracked  int       `json:"contents_tracked" example:"400"`
	LastError        string    `json:"last_error,omitempty" example:""`
	ConsecutiveFails int       `json:"consecutive_fails" example:"0"`
}

// ToCreatorResponse convert model to response
func ToCreatorResponse(creator *model.Creator) CreatorResponse {
	if creator == nil {
		return CreatorResponse{}
	}
	return CreatorResponse{
		Address:         creator.Address,
		Name:            creator.Name,
		LikeCount:       creator.LikeCount,
		CommentCount:    creator.CommentCount,
		FollowerCount:   creator.FollowerCount,
		FollowingCount:  creator.FollowingCount,
		TotalEngagement: creator.TotalEngagement,
		CreatedAt:       creator.CreatedAt,
		UpdatedAt:       creator.UpdatedAt,
	}
}

// ToContentResponse convert model to response
func ToContentResponse(content *model.Content) ContentResponse {
	if content == nil {
		return ContentResponse{}
	}
	return ContentResponse{
		BlobID:          content.BlobID,
		CreatorAddress:  content.CreatorAddress,
		TotalLikes:      content.TotalLikes,
		TotalComments:   content.TotalComments,
		TotalEngagement: content.TotalEngagement,
		CreatedAt:       content.CreatedAt,
		UpdatedAt:       content.UpdatedAt,
	}
}

// ToCommentResponse convert model to response
func ToCommentResponse(comment *model.Comment) CommentResponse {
	if comment == nil {
		return CommentResponse{}
	}
	return CommentResponse{
		ID:            comment.ID,
		BlobID:        comment.BlobID,
		AuthorAddress: comment.AuthorAddress,
		Text:          comment.Text,
		CreatedAt:     comment.CreatedAt,
	}
}

// ToCreatorListResponse convert creator list to response
func ToCreatorListResponse(creators []*model.Creator) CreatorListResponse {
	responses := make([]CreatorResponse, 0, len(creators))
	for _, creator := range creators {
		responses = append(responses, ToCreatorResponse(creator))
	}
	return CreatorListResponse{
		Creators: responses,
		Total:    len(responses),
	}
}

// ToContentListResponse convert content list to response
func ToContentListResponse(contents []*model.Content) ContentListResponse {
	responses := make([]ContentResponse, 0, len(contents))
	for _, content := range contents {
		responses = append(responses, ToContentResponse(content))
	}
	return ContentListResponse{
		Contents: responses,
		Total:    len(responses),
	}
}

// ToCommentListResponse convert comment list to response
func ToCommentListResponse(comments []*model.Comment) CommentListResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, ToCommentResponse(comment))
	}
	return CommentListResponse{
		Comments: responses,
		Total:    len(responses),
	}
}

// ToSyncStatusResponse convert registry status to response
func ToSyncStatusResponse(enabled bool, status registry_service.SyncStatus) SyncStatusResponse {
	return SyncStatusResponse{
		Enabled:          enabled,
		LastSyncAt:       status.LastSyncAt,
		CreatorsTracked:  status.CreatorsTracked,
		ContentsTracked:  status.ContentsTracked,
		LastError:        status.LastError,
		ConsecutiveFails: status.ConsecutiveFails,
	}
}
