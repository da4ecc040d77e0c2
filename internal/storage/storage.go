// Package storage persists the last known wallet connection so a session can
// be silently restored on the next start. A single record with overwrite
// semantics; never load-bearing - every failure here is recovered locally.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"go.uber.org/zap"
)

const (
	recordFileName = "wallet_connection.json"
	probeFileName  = ".storage_probe"
)

// ConnectionRecord is the persisted "remember me" record.
type ConnectionRecord struct {
	WalletType  wallet.Type `json:"walletType"`
	Address     string      `json:"address"`
	ConnectedAt int64       `json:"connectedAt"` // unix milliseconds
	Network     string      `json:"network"`
}

// Service reads and writes the connection record under a state directory.
type Service struct {
	dir    string
	maxAge time.Duration
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates a storage service rooted at dir. Records older than
// maxAge are treated as expired and purged on read.
func NewService(dir string, maxAge time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		dir:    dir,
		maxAge: maxAge,
		log:    log.Named("storage"),
		now:    time.Now,
	}
}

func (s *Service) recordPath() string {
	return filepath.Join(s.dir, recordFileName)
}

// Available probes the state directory with a test write before any real
// read or write is attempted. Some environments disable durable storage.
func (s *Service) Available() bool {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.log.Warn("state dir not writable", zap.Error(err))
		return false
	}
	probe := filepath.Join(s.dir, probeFileName)
	if err := os.WriteFile(probe, []byte("probe"), 0600); err != nil {
		s.log.Warn("storage probe write failed", zap.Error(err))
		return false
	}
	if err := os.Remove(probe); err != nil {
		s.log.Warn("storage probe cleanup failed", zap.Error(err))
		return false
	}
	return true
}

// SaveConnection overwrites the connection record.
func (s *Service) SaveConnection(rec ConnectionRecord) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return wallet.WrapError(wallet.ErrStorageUnavailable, "cannot create state dir", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return wallet.WrapError(wallet.ErrStorageUnavailable, "cannot serialize connection record", err)
	}
	if err := os.WriteFile(s.recordPath(), data, 0600); err != nil {
		return wallet.WrapError(wallet.ErrStorageUnavailable, "cannot write connection record", err)
	}
	s.log.Debug("connection record saved",
		zap.String("walletType", string(rec.WalletType)),
		zap.String("address", wallet.FormatAddress(rec.Address)))
	return nil
}

// LoadConnection returns the stored record, or nil when there is none, when
// it fails schema validation, or when it has expired. Invalid and expired
// records are purged so they are not retried on every load.
func (s *Service) LoadConnection() *ConnectionRecord {
	data, err := os.ReadFile(s.recordPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read connection record", zap.Error(err))
		}
		return nil
	}

	var rec ConnectionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn("corrupted connection record, clearing", zap.Error(err))
		s.ClearConnection()
		return nil
	}

	if !s.valid(rec) {
		s.log.Warn("invalid connection record, clearing")
		s.ClearConnection()
		return nil
	}

	connectedAt := time.UnixMilli(rec.ConnectedAt)
	if s.now().Sub(connectedAt) > s.maxAge {
		s.log.Debug("connection record expired, clearing",
			zap.Time("connectedAt", connectedAt))
		s.ClearConnection()
		return nil
	}

	s.log.Debug("connection record loaded",
		zap.String("walletType", string(rec.WalletType)),
		zap.String("address", wallet.FormatAddress(rec.Address)),
		zap.Duration("age", s.now().Sub(connectedAt)))
	return &rec
}

// ClearConnection removes the record. Best effort.
func (s *Service) ClearConnection() {
	if err := os.Remove(s.recordPath()); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to clear connection record", zap.Error(err))
	}
}

func (s *Service) valid(rec ConnectionRecord) bool {
	return wallet.ValidType(rec.WalletType) &&
		rec.Address != "" &&
		rec.ConnectedAt > 0 &&
		rec.Network != ""
}
