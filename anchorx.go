package anchorx

import (
	"github.com/krazyTry/anchorx-go/config"
	"github.com/krazyTry/anchorx-go/errcode"
	"github.com/krazyTry/anchorx-go/program"
)

// NewProgram creates a client for the accounts of one program.
//
// Example:
//
// cfg, _ := LoadConfig("anchorx.toml")
//
// vaults := NewProgram(programID, cfg.NewRPCClient(), program.WithCodeDecoder(errcode.EnumDecoder(VaultErrors...)))
//
// accounts, _ := program.GetProgramAccounts[Vault](ctx, vaults, program.PublicKeyFilter(owner, 8))
var NewProgram = program.NewProgram

// Canonicalize rewrites a failed send or simulation into a readable error.
//
// Example:
//
// _, err := solana.SendAndConfirm(ctx, rpcClient, wsClient, cfg.Commitment, cfg.RequestTimeout, instructions, payer)
//
// fmt.Println(Canonicalize(err, errcode.Table{6000: "Vault is locked"}))
var Canonicalize = errcode.Canonicalize

// LoadConfig reads path over the defaults, applies the environment and
// validates the result. An empty path skips the file.
func LoadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.FromEnv(cfg)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
