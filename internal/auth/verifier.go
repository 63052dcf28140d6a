package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// SignedPayload is the wallet-auth success payload the host app hands back
// to the webview after the user signs the SIWE message.
type SignedPayload struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Address   string `json:"address"`
	Version   int    `json:"version"`
}

type VerifyResult struct {
	IsValid bool
	Address string
}

// SignatureVerifier checks a signed login payload against the issued nonce.
// Injected so handlers are testable without a wallet.
type SignatureVerifier interface {
	Verify(payload SignedPayload, nonce string) (VerifyResult, error)
}

type personalSignVerifier struct{}

// NewPersonalSignVerifier verifies personal_sign signatures by recovering
// the signer address from the prefixed message hash.
func NewPersonalSignVerifier() SignatureVerifier {
	return personalSignVerifier{}
}

func (personalSignVerifier) Verify(payload SignedPayload, nonce string) (VerifyResult, error) {
	// the signed message must embed the nonce we issued
	if !strings.Contains(payload.Message, nonce) {
		return VerifyResult{}, nil
	}

	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(payload.Message), payload.Message)
	hash := crypto.Keccak256Hash([]byte(prefix))

	sig := strings.TrimPrefix(payload.Signature, "0x")
	sigBytes, err := hex.DecodeString(sig)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("malformed signature: %w", err)
	}
	if len(sigBytes) != 65 {
		return VerifyResult{}, errors.New("malformed signature: expected 65 bytes")
	}
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	pubKey, err := crypto.SigToPub(hash.Bytes(), sigBytes)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("signature recovery failed: %w", err)
	}
	recovered := crypto.PubkeyToAddress(*pubKey).Hex()

	if !strings.EqualFold(recovered, payload.Address) {
		return VerifyResult{}, nil
	}
	return VerifyResult{IsValid: true, Address: recovered}, nil
}
