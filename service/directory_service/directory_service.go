package directory_service

import (
	"creator-engagement-system/common"
	"creator-engagement-system/database"
	"creator-engagement-system/model"
)

// DirectoryService read-only translation between on-chain identifier lists and
// off-chain engagement records.
//
// Identifier lists originate from registry read calls against a possibly stale
// source, so bulk lookups silently drop identifiers with no record rather than
// failing.
type DirectoryService struct{}

// NewDirectoryService create directory service instance
func NewDirectoryService() *DirectoryService {
	return &DirectoryService{}
}

// ResolveCreators return the creator records matching ids, dropping unknown
// and malformed identifiers
func (s *DirectoryService) ResolveCreators(ids []string) ([]*model.Creator, error) {
	return database.DB.GetCreatorsByAddresses(normalizeIdentifiers(ids))
}

// ResolveContents return the content records matching ids, dropping unknown
// and malformed identifiers
func (s *DirectoryService) ResolveContents(ids []string) ([]*model.Content, error) {
	return database.DB.GetContentsByBlobIDs(normalizeIdentifiers(ids))
}

// GetCreator lookup a single creator record
func (s *DirectoryService) GetCreator(address string) (*model.Creator, error) {
	address, err := common.NormalizeIdentifier(address)
	if err != nil {
		return nil, err
	}
	return database.DB.GetCreatorByAddress(address)
}

// GetContent lookup a single content record
func (s *DirectoryService) GetContent(blobID string) (*model.Content, error) {
	blobID, err := common.NormalizeIdentifier(blobID)
	if err != nil {
		return nil, err
	}
	return database.DB.GetContentByBlobID(blobID)
}

// ListByOwner return all content records whose creator is ownerAddress
func (s *DirectoryService) ListByOwner(ownerAddress string) ([]*model.Content, error) {
	ownerAddress, err := common.NormalizeIdentifier(ownerAddress)
	if err != nil {
		return nil, err
	}
	return database.DB.GetContentsByCreator(ownerAddress)
}

// GetComments return a content item's comments in insertion order
func (s *DirectoryService) GetComments(blobID string) ([]*model.Comment, error) {
	blobID, err := common.NormalizeIdentifier(blobID)
	if err != nil {
		return nil, err
	}
	return database.DB.GetCommentsByBlobID(blobID)
}

// normalizeIdentifiers canonicalize ids, dropping ones that do not parse
func normalizeIdentifiers(ids []string) []string {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		canonical, err := common.NormalizeIdentifier(id)
		if err != nil {
			continue
		}
		normalized = append(normalized, canonical)
	}
	return normalized
}
