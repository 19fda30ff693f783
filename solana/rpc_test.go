package solana

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// newTestRPCFunc answers every JSON-RPC request with the result returned by
// respond. An empty result is sent back as a method not found error.
func newTestRPCFunc(t *testing.T, respond func(method string, body []byte) string) (*rpc.Client, func() []string) {
	t.Helper()

	var (
		mu      sync.Mutex
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		method := gjson.GetBytes(body, "method").String()

		mu.Lock()
		methods = append(methods, method)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		result := respond(method, body)
		if result == "" {
			_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+result+`}`)
	}))
	t.Cleanup(srv.Close)

	return rpc.New(srv.URL), func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), methods...)
	}
}

// newTestRPC serves canned results keyed by method name.
func newTestRPC(t *testing.T, results map[string]string) (*rpc.Client, func() []string) {
	return newTestRPCFunc(t, func(method string, _ []byte) string {
		return results[method]
	})
}

func accountParam(body []byte) string {
	return gjson.GetBytes(body, "params.0").String()
}

func accountInfoResult(owner solana.PublicKey, data []byte) string {
	return `{"context":{"slot":1},"value":{"lamports":1461600,"owner":"` + owner.String() +
		`","data":["` + base64.StdEncoding.EncodeToString(data) + `","base64"],"executable":false,"rentEpoch":0}}`
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
