package models

import "time"

// User represents a registered member of the platform
type User struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Image represents an uploaded image and its auction window.
// AuctionStart and AuctionEnd are assigned exactly once, when the like
// count first crosses the configured threshold, and never reassigned.
type Image struct {
	ImageID      string     `json:"image_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	URL          string     `json:"url"`
	IsPortrait   bool       `json:"is_portrait"`
	UploaderID   string     `json:"uploader_id"`
	TotalLikes   int        `json:"total_likes"`
	LikedBy      []string   `json:"liked_by,omitempty"`
	BidEligible  bool       `json:"bid_eligible"`
	AuctionStart *time.Time `json:"auction_start,omitempty"`
	AuctionEnd   *time.Time `json:"auction_end,omitempty"`
	Settled      bool       `json:"settled"`
	WinnerID     string     `json:"winner_id,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}

// Bid represents a user's bid on an image. Bids are immutable and
// append-only; amounts are whole currency units.
type Bid struct {
	BidID     string    `json:"bid_id"`
	ImageID   string    `json:"image_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is a single signed ledger entry. Positive amounts are
// credits, negative amounts are debits.
type Transaction struct {
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Balance holds a user's running total and its full transaction history.
// Invariant: Total equals the sum of the Transactions amounts.
type Balance struct {
	UserID       string        `json:"user_id"`
	Total        int64         `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

// Notification is created as a side effect of other operations and is
// never required for correctness.
type Notification struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment tracks a third-party gateway payment that funds a balance
type Payment struct {
	PaymentID     string    `json:"payment_id"`
	UserID        string    `json:"user_id"`
	Gateway       string    `json:"gateway"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment represents a user comment on an image
type Comment struct {
	CommentID string    `json:"comment_id"`
	ImageID   string    `json:"image_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow represents a follower -> followee edge
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Board is a user-curated collection of images
type Board struct {
	BoardID   string    `json:"board_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	ImageIDs  []string  `json:"image_ids"`
	CreatedAt time.Time `json:"created_at"`
}
