package integrationtests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// Covers comments, follows, boards and profile management end to end
func TestSocialSurface(t *testing.T) {
	app := SetupTestApp(t)

	ownerToken := app.SeedUser(t, "owner1", "olivia")
	aliceToken := app.SeedUser(t, "alice1", "alice")

	resp, w := app.DoRequest(t, http.MethodPost, "/images", ownerToken, map[string]any{
		"title": "harbor",
		"url":   "https://img.example/harbor.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	imageID := resp["data"].(map[string]any)["image_id"].(string)

	// comments
	resp, w = app.DoRequest(t, http.MethodPost, "/comments", aliceToken, map[string]any{
		"image_id": imageID,
		"text":     "lovely light",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := resp["data"].(map[string]any)["comment_id"].(string)

	resp, w = app.DoRequest(t, http.MethodGet, "/images/"+imageID+"/comments", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	// only the author can delete
	_, w = app.DoRequest(t, http.MethodDelete, "/comments/"+commentID, ownerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	_, w = app.DoRequest(t, http.MethodDelete, "/comments/"+commentID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// follows
	_, w = app.DoRequest(t, http.MethodPost, "/follows/owner1", aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	resp, _ = app.DoRequest(t, http.MethodGet, "/follows/followers", ownerToken, nil)
	require.Len(t, resp["data"].([]any), 1)
	resp, _ = app.DoRequest(t, http.MethodGet, "/follows/following", aliceToken, nil)
	require.Len(t, resp["data"].([]any), 1)

	// the owner was told about the comment and the follow
	resp, _ = app.DoRequest(t, http.MethodGet, "/notifications", ownerToken, nil)
	titles := map[string]bool{}
	for _, raw := range resp["data"].([]any) {
		titles[raw.(map[string]any)["title"].(string)] = true
	}
	require.True(t, titles["New comment"])
	require.True(t, titles["New follower"])

	_, w = app.DoRequest(t, http.MethodDelete, "/follows/owner1", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// boards
	resp, w = app.DoRequest(t, http.MethodPost, "/boards", aliceToken, map[string]any{"title": "seascapes"})
	require.Equal(t, http.StatusCreated, w.Code)
	boardID := resp["data"].(map[string]any)["board_id"].(string)

	resp, w = app.DoRequest(t, http.MethodPost, "/boards/"+boardID+"/images", aliceToken, map[string]any{"image_id": imageID})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].(map[string]any)["image_ids"].([]any), 1)

	// pinning twice is a no-op
	resp, _ = app.DoRequest(t, http.MethodPost, "/boards/"+boardID+"/images", aliceToken, map[string]any{"image_id": imageID})
	require.Len(t, resp["data"].(map[string]any)["image_ids"].([]any), 1)

	// another user cannot touch the board
	_, w = app.DoRequest(t, http.MethodDelete, "/boards/"+boardID, ownerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp, w = app.DoRequest(t, http.MethodDelete, "/boards/"+boardID+"/images/"+imageID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"].(map[string]any)["image_ids"])

	_, w = app.DoRequest(t, http.MethodDelete, "/boards/"+boardID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// profile
	resp, w = app.DoRequest(t, http.MethodPatch, "/users/me", aliceToken, map[string]any{"username": "alice-v2"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice-v2", resp["data"].(map[string]any)["username"])

	resp, _ = app.DoRequest(t, http.MethodGet, "/users/me", aliceToken, nil)
	require.Equal(t, "alice-v2", resp["data"].(map[string]any)["username"])

	// notification management
	resp, _ = app.DoRequest(t, http.MethodGet, "/notifications", ownerToken, nil)
	notes := resp["data"].([]any)
	require.NotEmpty(t, notes)
	firstID := notes[0].(map[string]any)["notification_id"].(string)

	_, w = app.DoRequest(t, http.MethodPatch, "/notifications/"+firstID+"/read", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, w = app.DoRequest(t, http.MethodPatch, "/notifications/read-all", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, w = app.DoRequest(t, http.MethodDelete, "/notifications/"+firstID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
