package chain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/tidwall/gjson"

	"github.com/SolAgent-Network/agent_layer/internal/metrics"
)

// rpcStub serves the minimal JSON-RPC surface SendAndConfirm touches.
type rpcStub struct {
	rejectSend bool
}

func (s *rpcStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	id := gjson.GetBytes(body, "id").Raw
	w.Header().Set("Content-Type", "application/json")

	switch gjson.GetBytes(body, "method").String() {
	case "sendTransaction":
		if s.rejectSend {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32002,"message":"Transaction simulation failed: Blockhash not found"}}`, id)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, id, solana.Signature{}.String())
	case "getSignatureStatuses":
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":1},"value":[{"slot":1,"confirmations":0,"err":null,"confirmationStatus":"confirmed"}]}}`, id)
	default:
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":null}`, id)
	}
}

func signedTransfer(t *testing.T) *solana.Transaction {
	t.Helper()
	from := solana.NewWallet()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, from.PublicKey(), solana.NewWallet().PublicKey()).Build(),
		},
		solana.Hash{},
		solana.TransactionPayer(from.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(from.PublicKey()) {
			return &from.PrivateKey
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return tx
}

// submissionTotal scrapes the metrics endpoint for one outcome of the
// submissions counter.
func submissionTotal(t *testing.T, outcome string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	prefix := fmt.Sprintf(`agent_layer_chain_submissions_total{outcome=%q} `, outcome)
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	return "0"
}

func TestSendAndConfirmRecordsOutcomes(t *testing.T) {
	stub := &rpcStub{}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	client, err := NewRPCClient(Config{
		RPCURL:          srv.URL,
		ConfirmInterval: 10 * time.Millisecond,
		ConfirmTimeout:  2 * time.Second,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.SendAndConfirm(context.Background(), signedTransfer(t)); err != nil {
		t.Fatalf("confirmed send failed: %v", err)
	}

	stub.rejectSend = true
	_, err = client.SendAndConfirm(context.Background(), signedTransfer(t))
	var rejected *SubmissionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want *SubmissionRejectedError", err)
	}
	if !strings.Contains(rejected.Reason, "Blockhash not found") {
		t.Errorf("reason = %q", rejected.Reason)
	}

	if got := submissionTotal(t, "confirmed"); got != "1" {
		t.Errorf("confirmed submissions = %s, want 1", got)
	}
	if got := submissionTotal(t, "rejected"); got != "1" {
		t.Errorf("rejected submissions = %s, want 1", got)
	}
}
