package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snapbid/internal/auction"
	"snapbid/internal/auctionerrors"
	"snapbid/services/auction/helpers"
	"snapbid/utils"

	model "snapbid/internal/models"
)

type AuctionServiceInterface interface {
	PlaceBid(ctx context.Context, bidderID, imageID string, amount int64) (model.Bid, error)
	BidsForImage(ctx context.Context, imageID string) ([]model.Bid, error)
	HighestBid(ctx context.Context, imageID string) (model.Bid, error)
	UserBidsSummary(ctx context.Context, userID string) ([]auction.BidSummaryRow, error)
	BidsForOwnedImages(ctx context.Context, ownerID string) ([]auction.OwnedImageBids, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bidderID := utils.UserID(c)
	bid, err := h.service.PlaceBid(c.Request.Context(), bidderID, req.ImageID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":  "PlaceBidHandler",
			"image_id": req.ImageID,
			"user_id":  bidderID,
			"error":    err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		ImageID:   bid.ImageID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":   bid.BidID,
		"image_id": bid.ImageID,
		"user_id":  bidderID,
		"amount":   bid.Amount,
	})
}

// GetBidsByImageHandler handles GET /images/:image_id/bids
func (h *AuctionHandler) GetBidsByImageHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	bids, err := h.service.BidsForImage(c.Request.Context(), imageID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByImageHandler: error retrieving bids", map[string]any{"image_id": imageID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByImageHandler", "bids retrieved successfully", map[string]any{
		"image_id": imageID,
		"count":    len(bids),
	})
}

// GetWinningBidHandler handles GET /images/:image_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	bid, err := h.service.HighestBid(c.Request.Context(), imageID)
	if err != nil {
		// For auction, winning bid not found -> 404
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"image_id": imageID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"image_id": imageID, "error": err.Error()})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		ImageID:   bid.ImageID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":   bid.BidID,
		"image_id": bid.ImageID,
		"user_id":  bid.UserID,
		"amount":   bid.Amount,
	})
}

// GetMyBidsHandler handles GET /bids/mine
func (h *AuctionHandler) GetMyBidsHandler(c *gin.Context) {
	userID := utils.UserID(c)
	rows, err := h.service.UserBidsSummary(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetMyBidsHandler: error retrieving bid summary", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if rows == nil {
		rows = []auction.BidSummaryRow{}
	}

	utils.JSONResponse(c, http.StatusOK, rows, "bid summary retrieved successfully")
	helpers.LogSuccess("GetMyBidsHandler", "bid summary retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(rows),
	})
}

// GetUploadBidsHandler handles GET /bids/uploads
func (h *AuctionHandler) GetUploadBidsHandler(c *gin.Context) {
	userID := utils.UserID(c)
	results, err := h.service.BidsForOwnedImages(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetUploadBidsHandler: error retrieving upload bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if results == nil {
		results = []auction.OwnedImageBids{}
	}

	utils.JSONResponse(c, http.StatusOK, results, "upload bids retrieved successfully")
	helpers.LogSuccess("GetUploadBidsHandler", "upload bids retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(results),
	})
}
