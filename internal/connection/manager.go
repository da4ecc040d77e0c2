// Package connection owns the wallet connection state machine: one active
// session at a time, moving between disconnected, connecting, connected and
// error. All transitions go through the Manager under a single mutex.
package connection

import (
	"context"
	"sync"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/storage"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"go.uber.org/zap"
)

// DefaultCheckInterval is how often a connected session is re-verified
// against the provider.
const DefaultCheckInterval = 5 * time.Second

// State is a snapshot of the connection state machine. Account is non-nil
// exactly when Status is connected; Err is non-nil exactly when Status is
// error.
type State struct {
	Status  wallet.ConnectionStatus
	Account *wallet.Account
	Err     *wallet.Error
}

// Listener receives state snapshots after every transition.
type Listener func(State)

// Manager drives connect, disconnect, retry and session restoration for one
// wallet session. The provider in use can differ between sessions; the
// Manager holds whichever adapter the current session was opened with.
type Manager struct {
	mu    sync.Mutex
	store *storage.Service
	log   *zap.Logger

	checkInterval time.Duration

	status  wallet.ConnectionStatus
	account *wallet.Account
	lastErr *wallet.Error
	adapter wallet.Adapter

	// generation invalidates in-flight work: a disconnect bumps it, and any
	// handshake or session check started before the bump drops its result.
	generation uint64

	tickerStop chan struct{}
	tickerDone chan struct{}

	listeners []Listener
	restored  bool
}

// NewManager creates a manager in the disconnected state.
func NewManager(store *storage.Service, checkInterval time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}
	return &Manager{
		store:         store,
		log:           log.Named("connection"),
		checkInterval: checkInterval,
		status:        wallet.StatusDisconnected,
	}
}

// Subscribe registers a listener for state transitions. Listeners are called
// synchronously after each transition, outside the manager lock.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Status: m.status, Account: m.account, Err: m.lastErr}
}

// Status returns the current connection status.
func (m *Manager) Status() wallet.ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Account returns the active session account, nil unless connected.
func (m *Manager) Account() *wallet.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

// Adapter returns the provider of the current or last session, nil if none.
func (m *Manager) Adapter() wallet.Adapter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adapter
}

// Connect runs the provider handshake and transitions the machine. Only one
// handshake may be in flight: a second Connect while connecting is rejected
// without touching the first. Connecting while already connected returns the
// existing session.
func (m *Manager) Connect(ctx context.Context, adapter wallet.Adapter) wallet.ConnectionResult {
	m.mu.Lock()
	switch m.status {
	case wallet.StatusConnecting:
		m.mu.Unlock()
		return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrUnknown, "a connection attempt is already in progress")}
	case wallet.StatusConnected:
		account := m.account
		m.mu.Unlock()
		return wallet.ConnectionResult{Success: true, Account: account}
	}

	gen := m.generation
	m.status = wallet.StatusConnecting
	m.account = nil
	m.lastErr = nil
	m.adapter = adapter
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.emit(snap)

	m.log.Info("connecting", zap.String("wallet", string(adapter.Type())))
	res := adapter.Connect(ctx)

	m.mu.Lock()
	if m.generation != gen {
		// A disconnect landed while the handshake was running; it wins.
		m.mu.Unlock()
		m.log.Info("connection result discarded after disconnect",
			zap.String("wallet", string(adapter.Type())))
		return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrUnknown, "connection cancelled")}
	}

	if !res.Success || res.Account == nil {
		if res.Err == nil {
			res.Err = wallet.NewError(wallet.ErrUnknown, "wallet connection failed")
		}
		m.status = wallet.StatusError
		m.account = nil
		m.lastErr = res.Err
		snap = m.snapshotLocked()
		m.mu.Unlock()
		m.emit(snap)
		m.log.Warn("connection failed",
			zap.String("wallet", string(adapter.Type())),
			zap.String("code", string(res.Err.Code)),
			zap.Error(res.Err))
		return res
	}

	m.status = wallet.StatusConnected
	m.account = res.Account
	m.lastErr = nil
	m.startSessionTickerLocked()
	snap = m.snapshotLocked()
	m.mu.Unlock()
	m.emit(snap)

	m.persistSession(adapter.Type(), res.Account)
	m.log.Info("connected",
		zap.String("wallet", string(adapter.Type())),
		zap.String("address", wallet.FormatAddress(res.Account.Address)),
		zap.String("network", string(res.Account.Network.Type)))
	return res
}

// Disconnect tears the session down. It always succeeds locally: the ticker
// is stopped before return, the stored record is cleared and the state is
// disconnected regardless of provider errors. An in-flight connect that
// finishes afterwards is discarded.
func (m *Manager) Disconnect(ctx context.Context) {
	m.teardown(ctx, true)
	m.log.Info("disconnected")
}

// DetachSession ends the session locally without calling the provider's
// Disconnect, so provider-side state such as embedded key material survives.
func (m *Manager) DetachSession(ctx context.Context) {
	m.teardown(ctx, false)
	m.log.Info("session detached")
}

func (m *Manager) teardown(ctx context.Context, disconnectProvider bool) {
	m.mu.Lock()
	m.generation++
	adapter := m.adapter
	stop, done := m.tickerStop, m.tickerDone
	m.tickerStop, m.tickerDone = nil, nil
	m.status = wallet.StatusDisconnected
	m.account = nil
	m.lastErr = nil
	m.adapter = nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	if m.store != nil {
		m.store.ClearConnection()
	}
	if disconnectProvider && adapter != nil {
		if err := adapter.Disconnect(ctx); err != nil {
			m.log.Warn("provider disconnect failed", zap.Error(err))
		}
	}

	m.emit(snap)
}

// Retry re-runs the handshake after a failed connect. Outside the error
// state it is a no-op returning the current outcome.
func (m *Manager) Retry(ctx context.Context) wallet.ConnectionResult {
	m.mu.Lock()
	if m.status != wallet.StatusError || m.adapter == nil {
		res := wallet.ConnectionResult{Success: m.status == wallet.StatusConnected, Account: m.account, Err: m.lastErr}
		m.mu.Unlock()
		return res
	}
	adapter := m.adapter
	m.status = wallet.StatusDisconnected
	m.lastErr = nil
	m.mu.Unlock()

	return m.Connect(ctx, adapter)
}

// CheckConnection verifies that a connected session is still live on the
// provider side. Session loss transitions to disconnected, never to error.
func (m *Manager) CheckConnection(ctx context.Context) {
	m.mu.Lock()
	if m.status != wallet.StatusConnected || m.adapter == nil {
		m.mu.Unlock()
		return
	}
	gen := m.generation
	adapter := m.adapter
	address := m.account.Address
	m.mu.Unlock()

	alive := adapter.IsConnected(ctx)
	var current *wallet.Account
	if alive {
		current = adapter.GetAccount(ctx)
	}

	m.mu.Lock()
	if m.generation != gen || m.status != wallet.StatusConnected {
		m.mu.Unlock()
		return
	}
	if alive && current != nil && current.Address == address {
		m.mu.Unlock()
		return
	}

	m.log.Info("wallet session lost", zap.String("address", wallet.FormatAddress(address)))
	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop, m.tickerDone = nil, nil
	}
	m.status = wallet.StatusDisconnected
	m.account = nil
	m.lastErr = nil
	m.adapter = nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if m.store != nil {
		m.store.ClearConnection()
	}
	m.emit(snap)
}

// RestoreSession attempts to silently resume the previously stored session.
// It runs at most once per process, only from the disconnected state, and
// never prompts: restoration uses existing permissions only. Any failure
// purges the stored record and leaves the machine disconnected.
func (m *Manager) RestoreSession(ctx context.Context, lookup func(wallet.Type) wallet.Adapter) bool {
	m.mu.Lock()
	if m.restored || m.status != wallet.StatusDisconnected {
		m.mu.Unlock()
		return false
	}
	m.restored = true
	gen := m.generation
	m.mu.Unlock()

	if m.store == nil || !m.store.Available() {
		return false
	}
	rec := m.store.LoadConnection()
	if rec == nil {
		return false
	}

	adapter := lookup(rec.WalletType)
	if adapter == nil {
		m.log.Warn("stored session names an unknown wallet, clearing",
			zap.String("walletType", string(rec.WalletType)))
		m.store.ClearConnection()
		return false
	}

	if !adapter.IsInstalled(ctx) || !adapter.IsAllowed(ctx) {
		m.log.Info("stored session no longer authorized, clearing",
			zap.String("walletType", string(rec.WalletType)))
		m.store.ClearConnection()
		return false
	}
	account := adapter.GetAccount(ctx)
	if account == nil {
		m.log.Info("stored session has no account, clearing",
			zap.String("walletType", string(rec.WalletType)))
		m.store.ClearConnection()
		return false
	}

	m.mu.Lock()
	if m.generation != gen || m.status != wallet.StatusDisconnected {
		m.mu.Unlock()
		return false
	}
	m.status = wallet.StatusConnected
	m.account = account
	m.lastErr = nil
	m.adapter = adapter
	m.startSessionTickerLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.emit(snap)

	m.persistSession(adapter.Type(), account)
	m.log.Info("session restored",
		zap.String("wallet", string(adapter.Type())),
		zap.String("address", wallet.FormatAddress(account.Address)))
	return true
}

func (m *Manager) persistSession(t wallet.Type, account *wallet.Account) {
	if m.store == nil {
		return
	}
	err := m.store.SaveConnection(storage.ConnectionRecord{
		WalletType:  t,
		Address:     account.Address,
		ConnectedAt: time.Now().UnixMilli(),
		Network:     string(account.Network.Type),
	})
	if err != nil {
		// The session stays up; it just will not survive a restart.
		m.log.Warn("failed to persist session", zap.Error(err))
	}
}

// startSessionTickerLocked starts the periodic session check. Caller holds
// the lock and has just entered the connected state.
func (m *Manager) startSessionTickerLocked() {
	stop := make(chan struct{})
	done := make(chan struct{})
	m.tickerStop = stop
	m.tickerDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.CheckConnection(context.Background())
			}
		}
	}()
}

func (m *Manager) snapshotLocked() State {
	return State{Status: m.status, Account: m.account, Err: m.lastErr}
}

func (m *Manager) emit(s State) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}
