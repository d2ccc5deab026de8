package config

import (
	"fmt"
	"time"

	"cosign/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/fox-one/pkg/store/db"
)

const (
	BackendMock   = "mock"
	BackendDB     = "db"
	BackendLedger = "ledger"
)

type (
	// Config cosign config
	Config struct {
		// Backend mock, db or ledger
		Backend  string    `json:"backend"`
		Location string    `json:"location"`
		DB       db.Config `json:"db"`
		Ledger   Ledger    `json:"ledger"`
		Vault    Vault     `json:"vault"`
		Policy   Policy    `json:"policy"`
		Cache    Cache     `json:"cache"`
		Sync     Sync      `json:"sync"`
	}

	// Ledger remote ledger config
	Ledger struct {
		Endpoint string `json:"endpoint"`
		// Timeout in seconds
		Timeout int64 `json:"timeout"`
		// Vaults ids tracked by the ledger backend
		Vaults []string `json:"vaults"`
	}

	// Vault defaults of new vaults
	Vault struct {
		Decimals int32 `json:"decimals"`
	}

	// Policy tally policy
	Policy struct {
		// DedupDecisions only the last decision of each voter counts
		DedupDecisions bool `json:"dedup_decisions"`
	}

	// Cache vault cache
	Cache struct {
		Size int `json:"size"`
		// TTL in seconds
		TTL int64 `json:"ttl"`
	}

	// Sync ledger syncer
	Sync struct {
		// Interval in seconds
		Interval  int64  `json:"interval"`
		Principal string `json:"principal"`
	}
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	configUtil.AutomaticLoadEnv("COSIGN")
	if err := configUtil.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultConfig(cfg)
	return cfg.Validate()
}

func defaultConfig(cfg *Config) {
	if cfg.Backend == "" {
		cfg.Backend = BackendMock
	}

	if cfg.Location == "" {
		cfg.Location = "UTC"
	}

	if cfg.Ledger.Timeout <= 0 {
		cfg.Ledger.Timeout = 10
	}

	if cfg.Vault.Decimals <= 0 {
		cfg.Vault.Decimals = 8
	}

	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 128
	}

	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 60
	}

	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = 30
	}
}

// Validate check the selected backend is usable
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMock, BackendDB:
		return nil
	case BackendLedger:
		if c.Ledger.Endpoint == "" {
			return fmt.Errorf("ledger.endpoint is required by the %s backend", c.Backend)
		}

		return nil
	}

	return fmt.Errorf("unknown backend %q", c.Backend)
}

// TallyPolicy policy selected by policy.dedup_decisions
func (c *Config) TallyPolicy() core.TallyPolicy {
	if c.Policy.DedupDecisions {
		return core.TallyLastPerVoter
	}

	return core.TallyAll
}

// AllowDeposit only local backends hold balances themselves
func (c *Config) AllowDeposit() bool {
	return c.Backend != BackendLedger
}

func (c *Config) LedgerTimeout() time.Duration {
	return time.Duration(c.Ledger.Timeout) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.Interval) * time.Second
}
