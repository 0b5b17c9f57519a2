package handler

import (
	"errors"
	"net/http"

	"creator-engagement-system/common"
	"creator-engagement-system/controller/respond"
	"creator-engagement-system/database"
	"creator-engagement-system/service/ledger_service"

	"github.com/gin-gonic/gin"
)

// EngagementHandler engagement action handler for the legacy /api surface.
//
// These routes keep the plain response shapes older clients expect, without
// the v1 response envelope: errors are {"message": ...} and success bodies
// are the bare updated records.
type EngagementHandler struct {
	ledgerService *ledger_service.LedgerService
}

// NewEngagementHandler create engagement handler instance
func NewEngagementHandler(ledgerService *ledger_service.LedgerService) *EngagementHandler {
	return &EngagementHandler{
		ledgerService: ledgerService,
	}
}

// RegisterUserRequest request body for user registration
type RegisterUserRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	Name          string `json:"name" binding:"required" example:"alice"`
}

// LikeRequest request body for like and unlike
type LikeRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	ContentID     string `json:"content_id" binding:"required" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
}

// CommentRequest request body for comment
type CommentRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	ContentID     string `json:"content_id" binding:"required" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
	CommentText   string `json:"comment_text" binding:"required" example:"great post"`
}

// FollowRequest request body for follow
type FollowRequest struct {
	WalletAddress       string `json:"wallet_address" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
	TargetWalletAddress string `json:"target_wallet_address" binding:"required" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
}

// RegisterPostRequest request body for content registration
type RegisterPostRequest struct {
	ContentID string `json:"content_id" binding:"required" example:"0x07e02f0e4cdd97d2b0b87d25492cbd364e4bfcab04d9b023a7b2e2e129b52a72"`
	CreatorID string `json:"creator_id" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
}

// writeLedgerError map ledger errors to the legacy {"message": ...} body
func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, ledger_service.ErrEmptyComment),
		errors.Is(err, ledger_service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, database.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// RegisterUser register a creator account
// @Summary      Register user
// @Description  Create a creator record keyed by wallet address
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterUserRequest  true  "User registration"
// @Success      201   {object}  respond.CreatorResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/users [post]
func (h *EngagementHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	creator, err := h.ledgerService.RegisterCreator(req.WalletAddress, req.Name)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, respond.ToCreatorResponse(creator))
}

// Like record a like
// @Summary      Like content
// @Description  Record a like, idempotent per (wallet, content) pair
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      LikeRequest  true  "Like action"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/like [post]
func (h *EngagementHandler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, user, err := h.ledgerService.RecordLike(req.WalletAddress, req.ContentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": respond.ToContentResponse(content),
		"user":    respond.ToCreatorResponse(user),
	})
}

// Unlike remove a like
// @Summary      Unlike content
// @Description  Remove a like if present; counters never go negative
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      LikeRequest  true  "Unlike action"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /api/unlike [post]
func (h *EngagementHandler) Unlike(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, user, err := h.ledgerService.RecordUnlike(req.WalletAddress, req.ContentID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": respond.ToContentResponse(content),
		"user":    respond.ToCreatorResponse(user),
	})
}

// Comment record a comment
// @Summary      Comment on content
// @Description  Append a comment and update engagement counters
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      CommentRequest  true  "Comment action"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/comment [post]
func (h *EngagementHandler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, creator, err := h.ledgerService.RecordComment(req.WalletAddress, req.ContentID, req.CommentText)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": respond.ToContentResponse(content),
		"creator": respond.ToCreatorResponse(creator),
	})
}

// Follow record a follow edge
// @Summary      Follow creator
// @Description  Add a directed follow edge, idempotent; self-follow rejected
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      FollowRequest  true  "Follow action"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/follow [post]
func (h *EngagementHandler) Follow(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	follower, followee, err := h.ledgerService.RecordFollow(req.WalletAddress, req.TargetWalletAddress)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   respond.ToCreatorResponse(follower),
		"target": respond.ToCreatorResponse(followee),
	})
}

// RegisterPost register a content record
// @Summary      Register content
// @Description  Create a content record keyed by blob id
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterPostRequest  true  "Content registration"
// @Success      201   {object}  respond.ContentResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/posts [post]
func (h *EngagementHandler) RegisterPost(c *gin.Context) {
	var req RegisterPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, err := h.ledgerService.RegisterContent(req.ContentID, req.CreatorID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, respond.ToContentResponse(content))
}

// TotalUserEngagement get a user's aggregated engagement
// @Summary      Get total user engagement
// @Description  Sum of like, comment, and follower counts for a wallet
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        wallet_address  path      string  true  "Wallet address"
// @Success      200             {object}  map[string]int64
// @Failure      404             {object}  map[string]string
// @Router       /api/total_user_engagement/{wallet_address} [get]
func (h *EngagementHandler) TotalUserEngagement(c *gin.Context) {
	address := c.Param("wallet_address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "wallet_address is required"})
		return
	}

	total, err := h.ledgerService.GetTotalEngagement(address, ledger_service.KindCreator)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_engagement": total})
}

// TotalPostEngagement get a content item's aggregated engagement
// @Summary      Get total post engagement
// @Description  Sum of like and comment counts for a content item
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        content_id  path      string  true  "Content blob id"
// @Success      200         {object}  map[string]int64
// @Failure      404         {object}  map[string]string
// @Router       /api/total_post_engagement/{content_id} [get]
func (h *EngagementHandler) TotalPostEngagement(c *gin.Context) {
	blobID := c.Param("content_id")
	if blobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "content_id is required"})
		return
	}

	total, err := h.ledgerService.GetTotalEngagement(blobID, ledger_service.KindContent)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_engagement": total})
}
