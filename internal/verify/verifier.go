package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProofPayload is the zero-knowledge proof the host app produces for an
// incognito action.
type ProofPayload struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}

// Result mirrors the cloud verifier's response body. A Success=false result
// usually means the user already verified for this action.
type Result struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type ProofVerifier interface {
	Verify(ctx context.Context, payload ProofPayload, action, signal string) (Result, error)
}

type cloudVerifier struct {
	baseURL string
	appID   string
	client  *http.Client
}

func NewCloudVerifier(baseURL, appID string) ProofVerifier {
	return &cloudVerifier{
		baseURL: baseURL,
		appID:   appID,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *cloudVerifier) Verify(ctx context.Context, payload ProofPayload, action, signal string) (Result, error) {
	body, err := json.Marshal(map[string]string{
		"proof":              payload.Proof,
		"merkle_root":        payload.MerkleRoot,
		"nullifier_hash":     payload.NullifierHash,
		"verification_level": payload.VerificationLevel,
		"action":             action,
		"signal":             signal,
	})
	if err != nil {
		return Result{}, err
	}

	endpoint := fmt.Sprintf("%s/api/v2/verify/%s", v.baseURL, v.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, err
	}
	res.Success = res.Success && resp.StatusCode == http.StatusOK
	return res, nil
}
