package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Transaction is the developer portal's view of a mini-app payment.
type Transaction struct {
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// TransactionVerifier checks a completed payment against an independent
// record. A nil verifier on the Service means no credential is configured.
type TransactionVerifier interface {
	Verify(ctx context.Context, transactionID, reference string) error
}

type devPortalVerifier struct {
	baseURL string
	appID   string
	apiKey  string
	client  *http.Client
}

// NewDevPortalVerifier verifies transactions through the developer portal
// REST API using a bearer credential.
func NewDevPortalVerifier(baseURL, appID, apiKey string) TransactionVerifier {
	return &devPortalVerifier{
		baseURL: baseURL,
		appID:   appID,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *devPortalVerifier) Verify(ctx context.Context, transactionID, reference string) error {
	endpoint := fmt.Sprintf("%s/api/v2/minikit/transaction/%s?app_id=%s",
		v.baseURL, url.PathEscape(transactionID), url.QueryEscape(v.appID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: portal returned %s", ErrVerificationFailed, resp.Status)
	}

	var tx Transaction
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if tx.Reference != reference {
		return fmt.Errorf("%w: reference disagrees with portal record", ErrVerificationFailed)
	}
	if tx.Status == "failed" {
		return fmt.Errorf("%w: transaction failed on chain", ErrVerificationFailed)
	}
	return nil
}
