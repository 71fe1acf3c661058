package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"snapbid/internal/auction"
	"snapbid/internal/config"
	"snapbid/internal/ledger"
	"snapbid/internal/notify"
	"snapbid/internal/payment"
	"snapbid/internal/repository"
	"snapbid/internal/server"
	"snapbid/internal/social"
	"snapbid/internal/sweep"

	auctionhandler "snapbid/services/auction/handler"
	ledgerhandler "snapbid/services/ledger/handler"
	notificationhandler "snapbid/services/notification/handler"
	socialhandler "snapbid/services/social/handler"

	model "snapbid/internal/models"
)

const testJWTSecret = "integration-test-secret"

// testClock is a mutable clock shared by every service under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testApp is the fully wired application against the in-memory store
type testApp struct {
	router  *gin.Engine
	store   *repository.MemoryStore
	sweeper *sweep.Sweeper
	clock   *testClock
}

type stubGateway struct{}

func (stubGateway) Initiate(_ context.Context, req payment.InitiateRequest) (payment.InitiateResponse, error) {
	return payment.InitiateResponse{Token: "tok-1", PaymentURL: "https://pay.example/tok-1"}, nil
}

func (stubGateway) Verify(_ context.Context, token string, amount int64) (payment.VerifyResponse, error) {
	return payment.VerifyResponse{Status: "Completed", TransactionID: "txn-1", Amount: amount}, nil
}

// SetupTestApp wires the router, services and sweeper the way main does,
// with an in-memory store and a controllable clock.
func SetupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.AuctionConfig{
		LikeThreshold: 3,
		MinIncrement:  50,
		Window:        7 * 24 * time.Hour,
		SweepInterval: time.Hour,
	}

	clock := &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := repository.NewMemoryStore()
	dispatcher := notify.NewDispatcher(store)
	locks := auction.NewKeyedMutex()

	auctionSvc := auction.NewAuctionService(store, store, store, store, dispatcher, cfg, locks).WithClock(clock.Now)
	ledgerSvc := ledger.NewLedgerService(store)
	paymentSvc := payment.NewPaymentService(store, ledgerSvc, stubGateway{}, dispatcher, "https://snapbid.example/return")
	imageSvc := social.NewImageService(store, store, dispatcher, cfg, locks).WithClock(clock.Now)
	commentSvc := social.NewCommentService(store, store, store, dispatcher)
	followSvc := social.NewFollowService(store, store, dispatcher)
	boardSvc := social.NewBoardService(store, store)
	userSvc := social.NewUserService(store)
	notificationSvc := notify.NewNotificationService(store)

	sweeper := sweep.NewSweeper(store, store, store, dispatcher, locks).WithClock(clock.Now)

	router := server.SetupRouter(server.Handlers{
		Auction:      auctionhandler.NewAuctionHandler(auctionSvc),
		Ledger:       ledgerhandler.NewLedgerHandler(ledgerSvc, paymentSvc),
		Image:        socialhandler.NewImageHandler(imageSvc, auctionSvc),
		Comment:      socialhandler.NewCommentHandler(commentSvc),
		Follow:       socialhandler.NewFollowHandler(followSvc),
		Board:        socialhandler.NewBoardHandler(boardSvc),
		User:         socialhandler.NewUserHandler(userSvc),
		Notification: notificationhandler.NewNotificationHandler(notificationSvc),
	}, testJWTSecret)

	return &testApp{router: router, store: store, sweeper: sweeper, clock: clock}
}

// SeedUser creates a user record and returns a bearer token for them
func (app *testApp) SeedUser(t *testing.T, userID, username string) string {
	t.Helper()
	err := app.store.CreateUser(context.Background(), model.User{
		UserID:   userID,
		Username: username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return TokenFor(t, userID)
}

// TokenFor signs a bearer token for the given user ID
func TokenFor(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// DoRequest executes an authenticated request and parses the JSON body
func (app *testApp) DoRequest(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	app.router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}
