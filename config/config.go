// Package config holds the process configuration shared by the RPC clients
// and the wallet helpers. A Config is built once and passed explicitly.
package config

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

const (
	EnvRPCURL      = "RPC_URL"
	EnvWSURL       = "WS_URL"
	EnvCommitment  = "COMMITMENT"
	EnvAdminWallet = "ADMIN_WALLET"
	EnvUserWallet  = "USER_WALLET"
)

type Config struct {
	Cluster    string
	RPCURL     string
	WSURL      string
	Commitment rpc.CommitmentType

	// AdminWallet and UserWallet are a keypair file path or a base58
	// secret key. Empty means a fresh wallet funded by airdrop.
	AdminWallet     string
	UserWallet      string
	AirdropLamports uint64

	// RequestTimeout bounds each HTTP round trip. Zero disables it.
	RequestTimeout time.Duration
}

func Default() Config {
	return Config{
		Cluster:         rpc.DevNet.Name,
		RPCURL:          rpc.DevNet.RPC,
		WSURL:           rpc.DevNet.WS,
		Commitment:      rpc.CommitmentFinalized,
		AirdropLamports: solana.LAMPORTS_PER_SOL,
		RequestTimeout:  30 * time.Second,
	}
}

type fileConfig struct {
	Cluster         string `toml:"cluster"`
	RPCURL          string `toml:"rpc_url"`
	WSURL           string `toml:"ws_url"`
	Commitment      string `toml:"commitment"`
	AdminWallet     string `toml:"admin_wallet"`
	UserWallet      string `toml:"user_wallet"`
	AirdropLamports uint64 `toml:"airdrop_lamports"`
	RequestTimeout  string `toml:"request_timeout"`
}

// Load reads a TOML file over Default. Keys missing from the file keep their
// default value. A cluster name sets both endpoints unless they are given too.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("cluster") {
		cluster, err := ParseCluster(raw.Cluster)
		if err != nil {
			return Config{}, err
		}
		cfg.Cluster = cluster.Name
		cfg.RPCURL = cluster.RPC
		cfg.WSURL = cluster.WS
	}

	if meta.IsDefined("rpc_url") {
		cfg.RPCURL = strings.TrimSpace(raw.RPCURL)
	}

	if meta.IsDefined("ws_url") {
		cfg.WSURL = strings.TrimSpace(raw.WSURL)
	}

	if meta.IsDefined("commitment") {
		commitment, err := ParseCommitment(raw.Commitment)
		if err != nil {
			return Config{}, err
		}
		cfg.Commitment = commitment
	}

	if meta.IsDefined("admin_wallet") {
		cfg.AdminWallet = strings.TrimSpace(raw.AdminWallet)
	}

	if meta.IsDefined("user_wallet") {
		cfg.UserWallet = strings.TrimSpace(raw.UserWallet)
	}

	if meta.IsDefined("airdrop_lamports") {
		cfg.AirdropLamports = raw.AirdropLamports
	}

	if meta.IsDefined("request_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RequestTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// FromEnv overlays the RPC_URL, WS_URL, COMMITMENT, ADMIN_WALLET and
// USER_WALLET environment variables on cfg. Unset variables are ignored.
func FromEnv(cfg Config) (Config, error) {
	if v, ok := lookupEnv(EnvRPCURL); ok {
		cfg.RPCURL = v
	}
	if v, ok := lookupEnv(EnvWSURL); ok {
		cfg.WSURL = v
	}
	if v, ok := lookupEnv(EnvCommitment); ok {
		commitment, err := ParseCommitment(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCommitment, err)
		}
		cfg.Commitment = commitment
	}
	if v, ok := lookupEnv(EnvAdminWallet); ok {
		cfg.AdminWallet = v
	}
	if v, ok := lookupEnv(EnvUserWallet); ok {
		cfg.UserWallet = v
	}
	return cfg, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func ParseCluster(name string) (rpc.Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet-beta", "mainnet":
		return rpc.MainNetBeta, nil
	case "testnet":
		return rpc.TestNet, nil
	case "devnet", "":
		return rpc.DevNet, nil
	case "localnet", "localhost":
		return rpc.LocalNet, nil
	default:
		return rpc.Cluster{}, fmt.Errorf("unknown cluster %q", name)
	}
}

func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(strings.ToLower(strings.TrimSpace(s))); c {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return c, nil
	default:
		return "", fmt.Errorf("unknown commitment %q", s)
	}
}

func (c Config) Validate() error {
	if err := checkURL(c.RPCURL, "http", "https"); err != nil {
		return fmt.Errorf("rpc url: %w", err)
	}
	if c.WSURL != "" {
		if err := checkURL(c.WSURL, "ws", "wss"); err != nil {
			return fmt.Errorf("ws url: %w", err)
		}
	}
	if _, err := ParseCommitment(string(c.Commitment)); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("negative request timeout %s", c.RequestTimeout)
	}
	return nil
}

func checkURL(raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%q: want %s", raw, strings.Join(schemes, " or "))
}

// NewRPCClient returns a client for RPCURL with RequestTimeout applied.
func (c Config) NewRPCClient() *rpc.Client {
	if c.RequestTimeout <= 0 {
		return rpc.New(c.RPCURL)
	}
	return rpc.NewWithCustomRPCClient(jsonrpc.NewClientWithOpts(c.RPCURL, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: c.RequestTimeout},
	}))
}

func (c Config) NewWSClient(ctx context.Context) (*ws.Client, error) {
	if c.WSURL == "" {
		return nil, fmt.Errorf("ws url not configured")
	}
	client, err := ws.Connect(ctx, c.WSURL)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.WSURL, err)
	}
	return client, nil
}
