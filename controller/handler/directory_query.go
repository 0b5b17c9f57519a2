package handler

import (
	"errors"

	"creator-engagement-system/chain"
	"creator-engagement-system/conf"
	"creator-engagement-system/controller/respond"
	"creator-engagement-system/database"
	"creator-engagement-system/service/directory_service"
	"creator-engagement-system/service/registry_service"

	"github.com/gin-gonic/gin"
)

// DirectoryQueryHandler directory query handler for the /api/v1 surface
type DirectoryQueryHandler struct {
	directoryService *directory_service.DirectoryService
	registryService  *registry_service.RegistryService
	chainClient      *chain.Client
}

// NewDirectoryQueryHandler create directory query handler instance
func NewDirectoryQueryHandler(directoryService *directory_service.DirectoryService) *DirectoryQueryHandler {
	return &DirectoryQueryHandler{
		directoryService: directoryService,
	}
}

// SetRegistryService sets the registry sync service (for status reporting)
func (h *DirectoryQueryHandler) SetRegistryService(registryService *registry_service.RegistryService) {
	h.registryService = registryService
}

// SetChainClient sets the chain read client (for live registry queries)
func (h *DirectoryQueryHandler) SetChainClient(chainClient *chain.Client) {
	h.chainClient = chainClient
}

// ResolveRequest request body for batch identifier resolution
type ResolveRequest struct {
	IDs []string `json:"ids" binding:"required" example:"0x32d2d5cea03110e49accbb01d081c92e8fb866376dd05b53ad2bbaab672bec93"`
}

// GetCreatorByAddress get creator info by address
// @Summary      Get creator by address
// @Description  Query creator record by wallet address
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        address  path      string  true  "Wallet address"
// @Success      200      {object}  respond.Response{data=respond.CreatorResponse}
// @Failure      404      {object}  respond.Response
// @Router       /creators/{address} [get]
func (h *DirectoryQueryHandler) GetCreatorByAddress(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respond.InvalidParam(c, "address is required")
		return
	}

	creator, err := h.directoryService.GetCreator(address)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respond.NotFound(c, "creator not found")
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToCreatorResponse(creator))
}

// GetContentByBlobID get content info by blob id
// @Summary      Get content by blob id
// @Description  Query content record by blob id
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        blobId  path      string  true  "Content blob id"
// @Success      200     {object}  respond.Response{data=respond.ContentResponse}
// @Failure      404     {object}  respond.Response
// @Router       /contents/{blobId} [get]
func (h *DirectoryQueryHandler) GetContentByBlobID(c *gin.Context) {
	blobID := c.Param("blobId")
	if blobID == "" {
		respond.InvalidParam(c, "blobId is required")
		return
	}

	content, err := h.directoryService.GetContent(blobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respond.NotFound(c, "content not found")
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToContentResponse(content))
}

// ResolveCreators batch resolve creator identifiers
// @Summary      Resolve creators
// @Description  Resolve a batch of identifiers to creator records, dropping unknown ids
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        body  body      ResolveRequest  true  "Identifier batch"
// @Success      200   {object}  respond.Response{data=respond.CreatorListResponse}
// @Failure      400   {object}  respond.Response
// @Router       /creators/resolve [post]
func (h *DirectoryQueryHandler) ResolveCreators(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	creators, err := h.directoryService.ResolveCreators(req.IDs)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToCreatorListResponse(creators))
}

// ResolveContents batch resolve content identifiers
// @Summary      Resolve contents
// @Description  Resolve a batch of identifiers to content records, dropping unknown ids
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        body  body      ResolveRequest  true  "Identifier batch"
// @Success      200   {object}  respond.Response{data=respond.ContentListResponse}
// @Failure      400   {object}  respond.Response
// @Router       /contents/resolve [post]
func (h *DirectoryQueryHandler) ResolveContents(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	contents, err := h.directoryService.ResolveContents(req.IDs)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToContentListResponse(contents))
}

// ListContentsByCreator get content list by creator address
// @Summary      Get contents by creator
// @Description  Query all content records owned by a creator address
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        address  path      string  true  "Creator address"
// @Success      200      {object}  respond.Response{data=respond.ContentListResponse}
// @Failure      400      {object}  respond.Response
// @Router       /creators/{address}/contents [get]
func (h *DirectoryQueryHandler) ListContentsByCreator(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respond.InvalidParam(c, "address is required")
		return
	}

	contents, err := h.directoryService.ListByOwner(address)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respond.NotFound(c, "creator not found")
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToContentListResponse(contents))
}

// GetContentComments get comments on a content item
// @Summary      Get content comments
// @Description  Query comments for a blob id in insertion order
// @Tags         Directory Query
// @Accept       json
// @Produce      json
// @Param        blobId  path      string  true  "Content blob id"
// @Success      200     {object}  respond.Response{data=respond.CommentListResponse}
// @Failure      404     {object}  respond.Response
// @Router       /contents/{blobId}/comments [get]
func (h *DirectoryQueryHandler) GetContentComments(c *gin.Context) {
	blobID := c.Param("blobId")
	if blobID == "" {
		respond.InvalidParam(c, "blobId is required")
		return
	}

	comments, err := h.directoryService.GetComments(blobID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respond.NotFound(c, "content not found")
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, respond.ToCommentListResponse(comments))
}

// GetSyncStatus get registry sync status
// @Summary      Get sync status
// @Description  Query the registry mirror's last sync round
// @Tags         Sync Status
// @Accept       json
// @Produce      json
// @Success      200  {object}  respond.Response{data=respond.SyncStatusResponse}
// @Router       /status [get]
func (h *DirectoryQueryHandler) GetSyncStatus(c *gin.Context) {
	if h.registryService == nil {
		respond.Success(c, respond.ToSyncStatusResponse(false, registry_service.SyncStatus{}))
		return
	}

	respond.Success(c, respond.ToSyncStatusResponse(true, h.registryService.Status()))
}

// GetRegistryCreators read the live on-chain creator registry
// @Summary      Get on-chain creator list
// @Description  Read and decode the creator registry directly from the fullnode
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Success      200  {object}  respond.Response{data=[]string}
// @Failure      500  {object}  respond.Response
// @Router       /registry/creators [get]
func (h *DirectoryQueryHandler) GetRegistryCreators(c *gin.Context) {
	if h.chainClient == nil {
		respond.ServerError(c, "chain client not configured")
		return
	}

	addresses, err := h.chainClient.ReadAddressVector("get_all_creators", conf.Cfg.Registry.CreatorRegistry)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, addresses)
}

// GetRegistryContents read the live on-chain content registry
// @Summary      Get on-chain content list
// @Description  Read and decode the content registry directly from the fullnode
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Success      200  {object}  respond.Response{data=[]string}
// @Failure      500  {object}  respond.Response
// @Router       /registry/contents [get]
func (h *DirectoryQueryHandler) GetRegistryContents(c *gin.Context) {
	if h.chainClient == nil {
		respond.ServerError(c, "chain client not configured")
		return
	}

	ids, err := h.chainClient.ReadAddressVector("get_all_contents", conf.Cfg.Registry.ContentRegistry)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, ids)
}
