package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cosign/core"
	"cosign/pkg/id"
	"cosign/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// Config ledger client config
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// New new ledger client
func New(cfg Config) core.LedgerClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &client{
		http: resthttp.New(cfg.Endpoint, cfg.Timeout),
	}
}

type client struct {
	http *resty.Client
}

func vaultPath(vaultID string, elems ...string) string {
	path := "/vaults/" + url.PathEscape(vaultID)
	for _, e := range elems {
		path += "/" + e
	}

	return path
}

func proposalPath(vaultID string, proposalID uint64, elems ...string) string {
	return vaultPath(vaultID, append([]string{"proposals", fmt.Sprint(proposalID)}, elems...)...)
}

func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	requestID := id.New()
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"ledger":     path,
		"request_id": requestID,
	})

	req := resthttp.WithRequestID(ctx, c.http, requestID)
	if session, ok := core.SessionFrom(ctx); ok {
		req = req.SetAuthToken(session.Principal)
	}

	if body != nil {
		req = req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		log.WithError(err).Errorln("ledger request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return &core.LedgerError{
			Code:    http.StatusServiceUnavailable,
			Message: "ledger unreachable",
			Details: err.Error(),
		}
	}

	if err := resthttp.ParseResponse(resp, out); err != nil {
		var re *resthttp.ResponseError
		if errors.As(err, &re) {
			lerr := decodeError(re)
			log.WithError(lerr).Debugln("ledger rejected request")
			return lerr
		}

		log.WithError(err).Errorln("decode ledger response")
		return err
	}

	return nil
}

func decodeError(re *resthttp.ResponseError) *core.LedgerError {
	var lerr core.LedgerError
	if err := json.Unmarshal(re.Body, &lerr); err != nil || lerr.Message == "" {
		lerr.Message = http.StatusText(re.StatusCode)
		if lerr.Details == "" && len(re.Body) > 0 && err != nil {
			lerr.Details = string(re.Body)
		}
	}

	if lerr.Code == 0 {
		lerr.Code = re.StatusCode
	}

	return &lerr
}

type proposeRequest struct {
	TraceID string          `json:"trace_id"`
	Creator string          `json:"creator"`
	Action  core.ActionType `json:"action"`
	Content json.RawMessage `json:"content"`
}

func (c *client) Propose(ctx context.Context, proposal *core.Proposal) (uint64, error) {
	body := proposeRequest{
		TraceID: proposal.TraceID,
		Creator: proposal.Creator,
		Action:  proposal.Action,
		Content: json.RawMessage(proposal.Content),
	}

	var out struct {
		ID uint64 `json:"id"`
	}

	if err := c.do(ctx, http.MethodPost, vaultPath(proposal.VaultID, "proposals"), body, &out); err != nil {
		return 0, err
	}

	return out.ID, nil
}

func (c *client) Confirm(ctx context.Context, vaultID string, proposalID uint64) error {
	return c.do(ctx, http.MethodPost, proposalPath(vaultID, proposalID, "confirm"), nil, nil)
}

func (c *client) ExecuteProposal(ctx context.Context, vaultID string, proposalID uint64) (*core.LedgerTransaction, error) {
	var tx core.LedgerTransaction
	if err := c.do(ctx, http.MethodPost, proposalPath(vaultID, proposalID, "execute"), nil, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *client) GetOwners(ctx context.Context, vaultID string) ([]*core.Signer, error) {
	var signers []*core.Signer
	if err := c.do(ctx, http.MethodGet, vaultPath(vaultID, "owners"), nil, &signers); err != nil {
		return nil, err
	}

	for _, signer := range signers {
		signer.VaultID = vaultID
	}

	return signers, nil
}

func (c *client) GetTransactionDetails(ctx context.Context, vaultID string, proposalID uint64) (*core.LedgerTransaction, error) {
	var tx core.LedgerTransaction
	if err := c.do(ctx, http.MethodGet, proposalPath(vaultID, proposalID), nil, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *client) GetTransactions(ctx context.Context, vaultID string) ([]*core.LedgerTransaction, error) {
	var txs []*core.LedgerTransaction
	if err := c.do(ctx, http.MethodGet, vaultPath(vaultID, "proposals"), nil, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (c *client) GetAccount(ctx context.Context, vaultID string) (*core.Vault, error) {
	var vault core.Vault
	if err := c.do(ctx, http.MethodGet, vaultPath(vaultID), nil, &vault); err != nil {
		return nil, err
	}

	return &vault, nil
}

func (c *client) CreateAccount(ctx context.Context, vault *core.Vault) error {
	return c.do(ctx, http.MethodPost, "/vaults", vault, vault)
}
