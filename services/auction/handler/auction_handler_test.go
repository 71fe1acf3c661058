package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"snapbid/internal/auctionerrors"
	"snapbid/services/auction/helpers"
	"snapbid/utils"

	model "snapbid/internal/models"
)

func setupTestRouter(handler *AuctionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(utils.ContextUserKey, "user1")
		c.Next()
	})
	router.POST("/bids", handler.PlaceBidHandler)
	router.GET("/bids/mine", handler.GetMyBidsHandler)
	router.GET("/images/:image_id/bids", handler.GetBidsByImageHandler)
	router.GET("/images/:image_id/winning", handler.GetWinningBidHandler)
	return router
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupTestRouter(NewAuctionHandler(mockService))

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(100)).
					Return(model.Bid{
						BidID:     uuid.NewString(),
						ImageID:   "img1",
						UserID:    "user1",
						Amount:    100,
						CreatedAt: now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				require.NotEmpty(t, bidID)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "img1", data["image_id"])
				require.Equal(t, "user1", data["user_id"])
				require.Equal(t, float64(100), data["amount"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_image_id",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "",
				Amount:  100,
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "bid_too_low_discloses_highest",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  120,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(120)).
					Return(model.Bid{}, &auctionerrors.BidTooLowError{Highest: 200, Increment: 50})
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid too low, current highest is 200 and the minimum increment is 50",
		},
		{
			name: "image_not_open",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(100)).
					Return(model.Bid{}, auctionerrors.ErrNotEligible)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "image is not open for bidding",
		},
		{
			name: "insufficient_funds",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(100)).
					Return(model.Bid{}, auctionerrors.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedMsg:    "insufficient balance",
		},
		{
			name: "conflicting_write",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(100)).
					Return(model.Bid{}, auctionerrors.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid raced with another update, retry",
		},
		{
			name: "internal_error",
			requestBody: helpers.PlaceBidRequest{
				ImageID: "img1",
				Amount:  100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "user1", "img1", int64(100)).
					Return(model.Bid{}, errors.New("store exploded"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			var body []byte
			switch v := tc.requestBody.(type) {
			case string:
				body = []byte(v)
			default:
				var err error
				body, err = json.Marshal(v)
				require.NoError(t, err)
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/bids", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				tc.validateData(t, data)
			}
		})
	}
}

// Test GetWinningBidHandler
func TestGetWinningBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupTestRouter(NewAuctionHandler(mockService))

	t.Run("winning_bid_found", func(t *testing.T) {
		mockService.EXPECT().
			HighestBid(gomock.Any(), "img1").
			Return(model.Bid{BidID: "b1", ImageID: "img1", UserID: "user2", Amount: 300, CreatedAt: time.Now().UTC()}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/images/img1/winning", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "b1", data["bid_id"])
		require.Equal(t, float64(300), data["amount"])
	})

	t.Run("no_bids", func(t *testing.T) {
		mockService.EXPECT().
			HighestBid(gomock.Any(), "img1").
			Return(model.Bid{}, auctionerrors.ErrNoBids)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/images/img1/winning", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test GetBidsByImageHandler
func TestGetBidsByImageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := setupTestRouter(NewAuctionHandler(mockService))

	t.Run("empty_history_is_200", func(t *testing.T) {
		mockService.EXPECT().
			BidsForImage(gomock.Any(), "img1").
			Return(nil, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/images/img1/bids", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, ok := resp["data"].([]any)
		require.True(t, ok)
		require.Empty(t, data)
	})

	t.Run("image_not_found", func(t *testing.T) {
		mockService.EXPECT().
			BidsForImage(gomock.Any(), "missing").
			Return(nil, auctionerrors.ErrImageNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/images/missing/bids", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
