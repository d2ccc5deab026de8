package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosign/core"
	"cosign/pkg/resthttp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) core.LedgerClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{Endpoint: srv.URL, Timeout: time.Second})
}

func TestClientPropose(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vaults/v1/proposals", r.URL.Path)
		assert.Equal(t, "Bearer alice", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(resthttp.HeaderKeyRequestID))

		var body proposeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "trace", body.TraceID)
		assert.Equal(t, core.ActionTypeTransfer, body.Action)

		writeData(w, map[string]interface{}{"id": 7})
	})

	ctx := core.WithSession(context.Background(), &core.Session{Principal: "alice"})
	id, err := client.Propose(ctx, &core.Proposal{
		VaultID: "v1",
		TraceID: "trace",
		Creator: "alice",
		Action:  core.ActionTypeTransfer,
		Content: []byte(`{"recipient":"bob","amount":10}`),
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestClientTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vaults/v1/proposals":
			writeData(w, []map[string]interface{}{
				{"id": 1, "action": "transfer", "content": map[string]interface{}{"recipient": "bob", "amount": 1}, "confirmations": []string{"alice", "bob"}, "threshold": 2},
			})
		case "/vaults/v1/proposals/1":
			writeData(w, map[string]interface{}{"id": 1, "executed": true, "successful": true})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	txs, err := client.GetTransactions(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, core.ActionTypeTransfer, txs[0].Action)
	assert.Equal(t, []string{"alice", "bob"}, txs[0].Confirmations)
	assert.Equal(t, uint8(2), txs[0].Threshold)

	tx, err := client.GetTransactionDetails(ctx, "v1", 1)
	require.NoError(t, err)
	assert.True(t, tx.Executed)
	assert.True(t, tx.Successful)
}

func TestClientOwnersAndAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vaults/v1/owners":
			writeData(w, []map[string]interface{}{
				{"principal": "alice", "name": "Alice"},
				{"principal": "bob"},
			})
		case "/vaults/v1":
			writeData(w, map[string]interface{}{
				"id":        "v1",
				"balance":   100,
				"threshold": 2,
				"signers":   []string{"alice", "bob"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	signers, err := client.GetOwners(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, "v1", signers[0].VaultID)
	assert.Equal(t, "Alice", signers[0].Name)
	assert.Equal(t, "bob", signers[1].Principal)

	vault, err := client.GetAccount(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), vault.Balance)
	assert.Equal(t, 2, vault.EffectiveThreshold())
}

func TestClientLedgerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vaults/v1/proposals/3/confirm":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":4031,"message":"not an owner","details":"bob"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	})

	ctx := context.Background()
	err := client.Confirm(ctx, "v1", 3)
	var lerr *core.LedgerError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 4031, lerr.Code)
	assert.Equal(t, "not an owner", lerr.Message)
	assert.Equal(t, "bob", lerr.Details)

	_, err = client.ExecuteProposal(ctx, "v1", 3)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, http.StatusBadGateway, lerr.Code)
	assert.Equal(t, "upstream down", lerr.Details)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	client := New(Config{Endpoint: endpoint, Timeout: time.Second})
	_, err := client.GetAccount(context.Background(), "v1")

	var lerr *core.LedgerError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, http.StatusServiceUnavailable, lerr.Code)
}
