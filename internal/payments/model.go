package payments

import "fmt"

// PendingPayment correlates a tip's initiation with its later confirmation.
// ID is the sole correlation key; the host wallet echoes it back as the
// payment reference.
type PendingPayment struct {
	ID        string `json:"id"`
	StoryID   string `json:"storyId"`
	AuthorID  string `json:"authorId"`
	Amount    string `json:"amount"`
	Token     string `json:"token"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// InitiateRequest is the tip intent posted by the webview.
type InitiateRequest struct {
	StoryID  string `json:"storyId"`
	AuthorID string `json:"authorId"`
	Amount   string `json:"amount"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

// PaymentPayload is the host wallet's completion object, posted back by the
// client once the pay command finishes.
type PaymentPayload struct {
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type ConfirmRequest struct {
	Payload PaymentPayload `json:"payload"`
}

// FormatAmount renders a tip amount for display: USDC with a dollar sign,
// WLD bare.
func FormatAmount(amount, token string) string {
	if token == "USDC" {
		return "$" + amount
	}
	return fmt.Sprintf("%s %s", amount, token)
}
