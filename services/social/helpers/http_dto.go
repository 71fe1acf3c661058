package helpers

import model "snapbid/internal/models"

// ImageDetailResponse is a single image annotated with its bidding state
// for the requesting user.
type ImageDetailResponse struct {
	model.Image
	Liked       bool       `json:"liked"`
	LatestBid   *model.Bid `json:"latest_bid,omitempty"`
	MyLatestBid *model.Bid `json:"my_latest_bid,omitempty"`
}

// Request/Response DTOs
type CreateImageRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,url"`
	IsPortrait  bool   `json:"is_portrait"`
}

type AddCommentRequest struct {
	ImageID string `json:"image_id" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type AddBoardImageRequest struct {
	ImageID string `json:"image_id" binding:"required"`
}

type UpdateProfileRequest struct {
	Username       string `json:"username"`
	PhoneNumber    string `json:"phone_number"`
	ProfilePicture string `json:"profile_picture"`
}
