package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	ImageID string `json:"image_id" binding:"required"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ImageID   string `json:"image_id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}
