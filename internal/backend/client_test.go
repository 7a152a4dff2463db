package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/ladderflash/internal/backend"
	"github.com/vytor/ladderflash/internal/credentials"
	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/models"
)

func TestClient_MissingCredentialSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("  "))
	ctx := context.Background()

	_, err := client.ReviewQueue(ctx, "", 10)
	assert.ErrorIs(t, err, errors.ErrMissingCredential)

	err = client.SubmitReview(ctx, "c1", models.RatingGood)
	assert.ErrorIs(t, err, errors.ErrMissingCredential)

	err = client.SetActiveLevel(ctx, "c1", 1)
	assert.ErrorIs(t, err, errors.ErrMissingCredential)

	err = client.UpsertLevel(ctx, "c1", 0, models.LevelContent{Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, errors.ErrMissingCredential)

	assert.Equal(t, int32(0), hits.Load())
}

func TestClient_ReviewQueue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/review/cards", r.URL.Path)
		assert.Equal(t, "d1", r.URL.Query().Get("deck_id"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"card_id":"c1","title":"one","active_level":1,"max_level":2,
			 "levels":[{"level_index":0,"content":{"question":"q0","answer":"a0"}},
			           {"level_index":1,"content":{"question":"q1","answer":"a1"}}]},
			{"card_id":"c2","title":"two","active_level":0,"max_level":1,
			 "levels":[{"level_index":0,"content":{"question":"q","answer":"a"}}]}
		]`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL+"/", credentials.Static("tok"))
	cards, err := client.ReviewQueue(context.Background(), "d1", 5)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "c1", cards[0].ID)
	assert.Equal(t, 1, cards[0].ActiveLevel)
	level, ok := cards[0].CurrentLevel()
	require.True(t, ok)
	assert.Equal(t, "q1", level.Content.Question)
	assert.Equal(t, "c2", cards[1].ID)
}

func TestClient_ReviewQueueOmitsEmptyDeck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeck := r.URL.Query()["deck_id"]
		assert.False(t, hasDeck)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("tok"))
	cards, err := client.ReviewQueue(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestClient_WriteEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c.body))
		}
		calls = append(calls, c)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("tok"))
	ctx := context.Background()

	require.NoError(t, client.SubmitReview(ctx, "c1", models.RatingHard))
	require.NoError(t, client.SetActiveLevel(ctx, "c1", 2))
	require.NoError(t, client.DeleteLevel(ctx, "c1", 3))
	require.NoError(t, client.UpsertLevel(ctx, "c1", 0, models.LevelContent{Question: "q", Answer: "a"}))
	require.NoError(t, client.SetMaxLevel(ctx, "c1", 4))

	require.Len(t, calls, 5)

	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "/cards/c1/review", calls[0].path)
	assert.Equal(t, "hard", calls[0].body["rating"])

	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, "/cards/c1/active-level", calls[1].path)
	assert.Equal(t, float64(2), calls[1].body["level"])

	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/cards/c1/levels/3", calls[2].path)
	assert.Nil(t, calls[2].body)

	assert.Equal(t, http.MethodPut, calls[3].method)
	assert.Equal(t, "/cards/c1/levels/0", calls[3].path)
	assert.Equal(t, "q", calls[3].body["question"])
	assert.Equal(t, "a", calls[3].body["answer"])

	assert.Equal(t, http.MethodPut, calls[4].method)
	assert.Equal(t, "/cards/c1/max-level", calls[4].path)
	assert.Equal(t, float64(4), calls[4].body["max_level"])
}

func TestClient_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"card not found: c9"}}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("tok"))
	_, err := client.Card(context.Background(), "c9")
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, "card not found: c9", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("tok"))
	err := client.SetMaxLevel(context.Background(), "c1", 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	assert.Equal(t, http.StatusBadGateway, errors.StatusOf(err))
}

func TestClient_LoginIsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])
		_, _ = w.Write([]byte(`{"access_token":"jwt","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, nil)
	tok, err := client.Login(context.Background(), "a@b.c", "secretpw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok.AccessToken)
}

func TestClient_CredentialFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer from-file", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"cards_studied_today":3,"weekly_activity":[0,0,0,0,0,1,3]}`))
	}))
	defer srv.Close()

	file := credentials.NewFile(t.TempDir() + "/token")
	client := backend.New(srv.URL, file)

	_, err := client.Stats(context.Background())
	assert.ErrorIs(t, err, errors.ErrMissingCredential)

	require.NoError(t, file.Save("from-file"))
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CardsStudiedToday)
	assert.Len(t, stats.WeeklyActivity, 7)
}

func TestClient_TimeoutLeavesCallerClientAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	for _, name := range []string{"timeout first", "client first"} {
		t.Run(name, func(t *testing.T) {
			hc := &http.Client{}
			opts := []backend.Option{backend.WithTimeout(10 * time.Millisecond), backend.WithHTTPClient(hc)}
			if name == "client first" {
				opts[0], opts[1] = opts[1], opts[0]
			}

			client := backend.New(srv.URL, credentials.Static("tok"), opts...)
			_, err := client.ReviewQueue(context.Background(), "", 0)

			require.NoError(t, err, "the caller's client has no timeout")
			assert.Zero(t, hc.Timeout)
		})
	}
}

func TestClient_TimeoutAppliesToBuiltClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, credentials.Static("tok"), backend.WithTimeout(20*time.Millisecond))
	_, err := client.ReviewQueue(context.Background(), "", 0)
	assert.Error(t, err)
}
