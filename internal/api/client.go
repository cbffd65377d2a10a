// Package api is the typed client for the backend REST API. It is a thin
// fetch-and-decode layer: business aggregation happens in analytics and
// services, never here.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"pext/internal/cache"
	"pext/internal/core"
)

const (
	defaultTimeout  = 10 * time.Second
	txCacheSize     = 64
	txCacheTTL      = 30 * time.Second
	maxFetchWorkers = 4
)

type Client struct {
	baseURL string
	http    *http.Client

	// Per-account transaction lists are the hottest fetch: every screen
	// remounts re-reads them. Cached with a short TTL, invalidated on
	// writes.
	txCache *cache.Cache[[]core.Transaction]
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		txCache: cache.New[[]core.Transaction](txCacheSize, txCacheTTL),
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

func (c *Client) User(ctx context.Context, id int64) (User, error) {
	var u User
	err := c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10), &u)
	return u, err
}

func (c *Client) Accounts(ctx context.Context, userID int64) ([]Account, error) {
	var accounts []Account
	err := c.get(ctx, "/api/accounts?userId="+strconv.FormatInt(userID, 10), &accounts)
	return accounts, err
}

func (c *Client) Cards(ctx context.Context, userID int64) ([]Card, error) {
	var cards []Card
	err := c.get(ctx, "/api/cards?userId="+strconv.FormatInt(userID, 10), &cards)
	return cards, err
}

func (c *Client) Loans(ctx context.Context, userID int64) ([]Loan, error) {
	var loans []Loan
	err := c.get(ctx, "/api/loans?userId="+strconv.FormatInt(userID, 10), &loans)
	return loans, err
}

// AccountTransactions returns one account's transactions, served from the
// TTL cache when fresh.
func (c *Client) AccountTransactions(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	key := "txns:" + strconv.FormatInt(accountID, 10)
	if txs, ok := c.txCache.Get(key); ok {
		return txs, nil
	}

	var txs []core.Transaction
	if err := c.get(ctx, "/api/transactions?accountId="+strconv.FormatInt(accountID, 10), &txs); err != nil {
		return nil, err
	}
	c.txCache.Put(key, txs)
	return txs, nil
}

// AllTransactions fetches every account's transactions concurrently and
// flattens the results. A failing account degrades to an empty slice so
// one broken account cannot blank the whole dashboard.
func (c *Client) AllTransactions(ctx context.Context, accounts []Account) []core.Transaction {
	results := make([][]core.Transaction, len(accounts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFetchWorkers)
	for i, acct := range accounts {
		g.Go(func() error {
			txs, err := c.AccountTransactions(ctx, acct.ID)
			if err != nil {
				slog.WarnContext(ctx, "Skipping account transactions",
					"account_id", acct.ID,
					"error", err)
				return nil
			}
			results[i] = txs
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, they degrade

	var all []core.Transaction
	for _, txs := range results {
		all = append(all, txs...)
	}
	return all
}

// InvalidateTransactions drops the cached list for one account, forcing the
// next read through to the backend.
func (c *Client) InvalidateTransactions(accountID int64) {
	c.txCache.Remove("txns:" + strconv.FormatInt(accountID, 10))
}
