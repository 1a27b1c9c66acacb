// Package lightwallet wires the scan pipeline, transaction builder, and
// encrypted persistence into a single handle a host process can construct,
// refresh, and save without reaching into any subpackage directly.
package lightwallet

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/cryptonote-community/lightwallet/config"
	"github.com/cryptonote-community/lightwallet/daemonclient"
	"github.com/cryptonote-community/lightwallet/notify"
	"github.com/cryptonote-community/lightwallet/scan"
	"github.com/cryptonote-community/lightwallet/txbuilder"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/walletfile"
	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleWallet)

// Client is the core struct a host embeds: it owns the wallet state, a
// coordinator driving the scan pipeline against a daemon, and a builder for
// constructing and committing transactions.
type Client struct {
	Wallet      *wallet.Wallet
	Coordinator *scan.Coordinator
	Builder     *txbuilder.Builder
	daemon      *daemonclient.Client
	walletPath  string
}

// Open constructs a Client from an existing wallet-file, or returns
// walletfile's own error if the file is absent, corrupt, or declares a
// version newer than this implementation understands.
func Open(cfg config.Config, walletPath string, keys wallet.AccountKeys) (*Client, error) {
	w, err := walletfile.Load(walletPath, keys)
	if err != nil {
		return nil, err
	}
	return newClient(cfg, walletPath, w), nil
}

// Create constructs a brand-new Client seeded only with keys and the
// genesis block hash, for a wallet that has never been saved before.
func Create(cfg config.Config, walletPath string, keys wallet.AccountKeys, genesisHash [32]byte) *Client {
	w := wallet.New(keys, genesisHash)
	return newClient(cfg, walletPath, w)
}

func newClient(cfg config.Config, walletPath string, w *wallet.Wallet) *Client {
	daemon := daemonclient.New(cfg.DaemonAddress)
	workers := cfg.ScanWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	coordinator := scan.NewCoordinator(w, daemon, workers)
	coordinator.SetAccountCreationTime(cfg.AccountCreationTime)
	c := &Client{
		Wallet:      w,
		Coordinator: coordinator,
		Builder:     txbuilder.NewBuilder(w, daemon),
		daemon:      daemon,
		walletPath:  walletPath,
	}
	return c
}

// SetPublisher attaches an optional event sink; nil detaches it.
func (c *Client) SetPublisher(p *notify.Publisher) {
	c.Coordinator.SetPublisher(p)
}

// Refresh drives the scan pipeline forward and persists the resulting
// wallet state. A crash between the two leaves the wallet-file one refresh
// round stale, never ahead of what was actually scanned.
func (c *Client) Refresh(ctx context.Context) error {
	if err := c.Coordinator.Refresh(ctx); err != nil {
		return err
	}
	return walletfile.Save(c.walletPath, c.Wallet)
}

// Save writes the current wallet state to disk without refreshing first.
func (c *Client) Save() error {
	return walletfile.Save(c.walletPath, c.Wallet)
}

// AutoRefresher periodically calls Client.Refresh on a ticker, the
// in-process equivalent of the daemon-facing idle-refresh cadence: it is
// not a server, just an optional scheduler a host may start and stop.
type AutoRefresher struct {
	client *Client
	period time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewAutoRefresher returns an AutoRefresher that will call client.Refresh
// every period once Start is called.
func NewAutoRefresher(client *Client, period time.Duration) *AutoRefresher {
	return &AutoRefresher{client: client, period: period}
}

// Start begins the ticker loop in a background goroutine. Calling Start
// again before Stop is a no-op.
func (a *AutoRefresher) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.stopped = make(chan struct{})

	go func() {
		defer close(a.stopped)
		ticker := time.NewTicker(a.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := a.client.Refresh(ctx); err != nil {
					logger.Warn("auto refresh failed", "err", err)
				}
			}
		}
	}()
}

// Stop cancels the ticker loop and waits for the goroutine to exit. It is
// safe to call Stop without a prior Start.
func (a *AutoRefresher) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	stopped := a.stopped
	a.cancel = nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}
