package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"snapbid/services/social/helpers"
	"snapbid/utils"

	model "snapbid/internal/models"
)

type ImageServiceInterface interface {
	Upload(ctx context.Context, uploaderID, title, description, url string, isPortrait bool) (model.Image, error)
	Image(ctx context.Context, imageID string) (model.Image, error)
	List(ctx context.Context) ([]model.Image, error)
	LikedBy(ctx context.Context, userID string) ([]model.Image, error)
	Delete(ctx context.Context, imageID, userID string) error
	ToggleLike(ctx context.Context, imageID, userID string) (model.Image, error)
}

// ImageBidsInterface supplies the bid history used to annotate the
// single-image view.
type ImageBidsInterface interface {
	BidsForImage(ctx context.Context, imageID string) ([]model.Bid, error)
}

type ImageHandler struct {
	service ImageServiceInterface
	bids    ImageBidsInterface
}

func NewImageHandler(service ImageServiceInterface, bids ImageBidsInterface) *ImageHandler {
	return &ImageHandler{service: service, bids: bids}
}

// CreateImageHandler handles POST /images
func (h *ImageHandler) CreateImageHandler(c *gin.Context) {
	var req helpers.CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateImageHandler", err)
		return
	}

	userID := utils.UserID(c)
	image, err := h.service.Upload(c.Request.Context(), userID, req.Title, req.Description, req.URL, req.IsPortrait)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateImageHandler: failed to create image", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, image, "image created successfully")
	helpers.LogSuccess("CreateImageHandler", "image created successfully", map[string]any{
		"image_id": image.ImageID,
		"user_id":  userID,
	})
}

// GetImageHandler handles GET /images/:image_id
func (h *ImageHandler) GetImageHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	userID := utils.UserID(c)
	image, err := h.service.Image(c.Request.Context(), imageID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetImageHandler: error retrieving image", map[string]any{"image_id": imageID, "error": err.Error()})
		return
	}

	detail := helpers.ImageDetailResponse{
		Image: image,
		Liked: lo.Contains(image.LikedBy, userID),
	}

	// Bid history is an annotation only; the image itself is still served
	// if the lookup fails.
	bids, err := h.bids.BidsForImage(c.Request.Context(), imageID)
	if err != nil {
		utils.Warn("GetImageHandler: error retrieving bids for image", map[string]any{"image_id": imageID, "error": err.Error()})
	}
	if len(bids) > 0 {
		detail.LatestBid = &bids[0]
		if mine, ok := lo.Find(bids, func(b model.Bid) bool { return b.UserID == userID }); ok {
			detail.MyLatestBid = &mine
		}
	}

	utils.JSONResponse(c, http.StatusOK, detail, "image retrieved successfully")
}

// ListImagesHandler handles GET /images
func (h *ImageHandler) ListImagesHandler(c *gin.Context) {
	images, err := h.service.List(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListImagesHandler: error listing images", map[string]any{"error": err.Error()})
		return
	}

	if images == nil {
		images = []model.Image{}
	}

	utils.JSONResponse(c, http.StatusOK, images, "images retrieved successfully")
}

// ListLikedImagesHandler handles GET /images/liked
func (h *ImageHandler) ListLikedImagesHandler(c *gin.Context) {
	userID := utils.UserID(c)
	images, err := h.service.LikedBy(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListLikedImagesHandler: error listing liked images", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if images == nil {
		images = []model.Image{}
	}

	utils.JSONResponse(c, http.StatusOK, images, "liked images retrieved successfully")
}

// DeleteImageHandler handles DELETE /images/:image_id
func (h *ImageHandler) DeleteImageHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	userID := utils.UserID(c)
	if err := h.service.Delete(c.Request.Context(), imageID, userID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteImageHandler: error deleting image", map[string]any{"image_id": imageID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "image deleted successfully")
	helpers.LogSuccess("DeleteImageHandler", "image deleted successfully", map[string]any{
		"image_id": imageID,
		"user_id":  userID,
	})
}

// ToggleLikeHandler handles POST /images/:image_id/like
func (h *ImageHandler) ToggleLikeHandler(c *gin.Context) {
	imageID := c.Param("image_id")
	userID := utils.UserID(c)
	image, err := h.service.ToggleLike(c.Request.Context(), imageID, userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ToggleLikeHandler: failed to toggle like", map[string]any{"image_id": imageID, "user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, image, "like toggled successfully")
	helpers.LogSuccess("ToggleLikeHandler", "like toggled successfully", map[string]any{
		"image_id":     imageID,
		"user_id":      userID,
		"total_likes":  image.TotalLikes,
		"bid_eligible": image.BidEligible,
	})
}
