package solana

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/mr-tron/base58"

	"github.com/krazyTry/anchorx-go/config"
)

// LoadKeypair reads a solana-keygen JSON file. When src does not name a file
// it is parsed as a base58 encoded 64 byte secret key. A leading ~ and
// environment variables in a path are expanded.
func LoadKeypair(src string) (solana.PrivateKey, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errors.New("empty keypair source")
	}

	path, err := expandPath(src)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
		if err != nil {
			return nil, fmt.Errorf("load keypair %s: %w", path, err)
		}
		return key, nil
	}

	raw, err := base58.Decode(src)
	if err != nil {
		return nil, errors.New("keypair source is neither a keypair file nor a base58 secret key")
	}
	key := solana.PrivateKey(raw)
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("base58 keypair: %w", err)
	}
	return key, nil
}

func expandPath(p string) (string, error) {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", p, err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

// Airdrop requests lamports for to and waits until the airdrop is confirmed.
func Airdrop(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	to solana.PublicKey,
	lamports uint64,
	commitment rpc.CommitmentType,
	timeout time.Duration,
) (solana.Signature, error) {
	sig, err := rpcClient.RequestAirdrop(ctx, to, lamports, commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("request airdrop to %s: %w", to, err)
	}

	var wait *time.Duration
	if timeout > 0 {
		wait = &timeout
	}
	if _, err = sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, wait); err != nil {
		return sig, fmt.Errorf("confirm airdrop %s: %w", sig, err)
	}
	return sig, nil
}

// FundedWallet loads src with LoadKeypair. An empty src yields a new wallet
// funded with cfg.AirdropLamports.
func FundedWallet(
	ctx context.Context,
	cfg config.Config,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	src string,
) (*solana.Wallet, error) {
	if src != "" {
		key, err := LoadKeypair(src)
		if err != nil {
			return nil, err
		}
		return &solana.Wallet{PrivateKey: key}, nil
	}

	wallet := solana.NewWallet()
	if cfg.AirdropLamports == 0 {
		return wallet, nil
	}
	if _, err := Airdrop(ctx, rpcClient, wsClient, wallet.PublicKey(), cfg.AirdropLamports, cfg.Commitment, cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Wallets are the admin and user identities of a test run.
type Wallets struct {
	Admin *solana.Wallet
	User  *solana.Wallet
}

// LoadWallets resolves cfg.AdminWallet and cfg.UserWallet with FundedWallet.
func LoadWallets(ctx context.Context, cfg config.Config, rpcClient *rpc.Client, wsClient *ws.Client) (*Wallets, error) {
	admin, err := FundedWallet(ctx, cfg, rpcClient, wsClient, cfg.AdminWallet)
	if err != nil {
		return nil, fmt.Errorf("admin wallet: %w", err)
	}
	user, err := FundedWallet(ctx, cfg, rpcClient, wsClient, cfg.UserWallet)
	if err != nil {
		return nil, fmt.Errorf("user wallet: %w", err)
	}
	return &Wallets{Admin: admin, User: user}, nil
}
