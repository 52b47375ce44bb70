package rest

import (
	"errors"
	"net/http"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/api/rest/dto"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/importer"
	"github.com/mintstream/marketplace-indexer/internal/store"
	"github.com/mintstream/marketplace-indexer/internal/store/schema"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitImport submits a collection for importing
	// POST /api/v1/imports
	SubmitImport(c *gin.Context)

	// GetImportStatus retrieves an import job by its ID
	// GET /api/v1/imports/:job_id
	GetImportStatus(c *gin.Context)

	// GetItem retrieves a token with its current owners
	// GET /api/v1/items/:contract/:token_number
	GetItem(c *gin.Context)

	// GetItemActivity retrieves a token's history, newest first
	// GET /api/v1/items/:contract/:token_number/activity?limit=<limit>
	GetItemActivity(c *gin.Context)

	// ListListings retrieves listings filtered by status
	// GET /api/v1/listings?status=<status>&limit=<limit>&offset=<offset>
	ListListings(c *gin.Context)

	// GetListing retrieves a single listing by its chain-assigned ID
	// GET /api/v1/listings/:listing_id
	GetListing(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	chain    domain.Chain
	store    store.Store
	importer *importer.Importer
}

// NewHandler creates a new REST API handler
func NewHandler(chain domain.Chain, st store.Store, imp *importer.Importer) Handler {
	return &handler{
		chain:    chain,
		store:    st,
		importer: imp,
	}
}

// submitImportRequest is the POST /imports request body
type submitImportRequest struct {
	ContractAddress string `json:"contract_address" binding:"required"`
}

// SubmitImport submits a collection for importing. Resubmitting a known
// contract returns the existing job.
func (h *handler) SubmitImport(c *gin.Context) {
	var req submitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !ethcommon.IsHexAddress(req.ContractAddress) {
		respondBadRequest(c, "Invalid contract address")
		return
	}

	record, err := h.importer.Submit(c.Request.Context(), req.ContractAddress)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedContract) {
			respondBadRequest(c, "Contract supports neither ERC-721 nor ERC-1155")
			return
		}
		respondInternalError(c, err, "Failed to submit import",
			zap.String("contract", req.ContractAddress))
		return
	}

	c.JSON(http.StatusAccepted, dto.NewImportJob(record))
}

// GetImportStatus retrieves an import job by its ID
func (h *handler) GetImportStatus(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		respondBadRequest(c, "Job ID is required")
		return
	}

	record, err := h.importer.Status(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			respondNotFound(c, "Import job not found")
			return
		}
		respondInternalError(c, err, "Failed to get import job", zap.String("jobID", jobID))
		return
	}

	c.JSON(http.StatusOK, dto.NewImportJob(record))
}

// GetItem retrieves a token with its current owners
func (h *handler) GetItem(c *gin.Context) {
	contract, tokenNumber, ok := itemParams(c)
	if !ok {
		return
	}

	item, err := h.store.GetItem(c.Request.Context(), contract, h.chain, tokenNumber)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			respondNotFound(c, "Item not found")
			return
		}
		respondInternalError(c, err, "Failed to get item",
			zap.String("contract", contract), zap.String("tokenNumber", tokenNumber))
		return
	}

	ownerships, err := h.store.GetOwnerships(c.Request.Context(), contract, h.chain, tokenNumber)
	if err != nil {
		respondInternalError(c, err, "Failed to get ownerships",
			zap.String("contract", contract), zap.String("tokenNumber", tokenNumber))
		return
	}

	c.JSON(http.StatusOK, dto.NewItem(item, ownerships))
}

// GetItemActivity retrieves a token's history, newest first
func (h *handler) GetItemActivity(c *gin.Context) {
	contract, tokenNumber, ok := itemParams(c)
	if !ok {
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	entries, err := h.store.GetTokenActivity(c.Request.Context(), contract, h.chain, tokenNumber, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to get token activity",
			zap.String("contract", contract), zap.String("tokenNumber", tokenNumber))
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": dto.NewActivity(entries)})
}

// ListListings retrieves listings filtered by status
func (h *handler) ListListings(c *gin.Context) {
	status := schema.ListingStatus(c.DefaultQuery("status", string(schema.ListingStatusCreated)))
	switch status {
	case schema.ListingStatusCreated, schema.ListingStatusCancelled, schema.ListingStatusCompleted:
	default:
		respondValidationError(c, "status must be one of created, cancelled, completed")
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		respondValidationError(c, "offset must be a non-negative integer")
		return
	}

	listings, total, err := h.store.GetListingsByStatus(c.Request.Context(), h.chain, status, limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list listings", zap.String("status", string(status)))
		return
	}

	c.JSON(http.StatusOK, dto.NewListingPage(listings, total, limit, offset))
}

// GetListing retrieves a single listing by its chain-assigned ID
func (h *handler) GetListing(c *gin.Context) {
	listingID := c.Param("listing_id")
	if listingID == "" {
		respondBadRequest(c, "Listing ID is required")
		return
	}

	listing, err := h.store.GetListing(c.Request.Context(), h.chain, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			respondNotFound(c, "Listing not found")
			return
		}
		respondInternalError(c, err, "Failed to get listing", zap.String("listingID", listingID))
		return
	}

	c.JSON(http.StatusOK, dto.NewListing(listing))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// itemParams validates and normalizes the contract/token path parameters
func itemParams(c *gin.Context) (contract string, tokenNumber string, ok bool) {
	contract = c.Param("contract")
	if !ethcommon.IsHexAddress(contract) {
		respondBadRequest(c, "Invalid contract address")
		return "", "", false
	}
	tokenNumber = c.Param("token_number")
	if tokenNumber == "" {
		respondBadRequest(c, "Token number is required")
		return "", "", false
	}
	return domain.NormalizeAddress(contract), tokenNumber, true
}

// parseLimit reads the limit query parameter with defaulting and capping
func parseLimit(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		respondValidationError(c, "limit must be a positive integer")
		return 0, false
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit, true
}
