package credential

import (
	"context"
)

// TestResult relays the outcome of a live connectivity check.
type TestResult struct {
	Status  string `json:"status"` // "success" | "error"
	Message string `json:"message,omitempty"`
}

// Tester performs a live verification of decrypted credential data. This
// subsystem only supplies the inputs and relays the result; the network test
// itself belongs to the connector catalog.
type Tester interface {
	Test(ctx context.Context, typeName string, data Data) TestResult
}

// TesterFunc adapts a function to the Tester interface.
type TesterFunc func(ctx context.Context, typeName string, data Data) TestResult

func (f TesterFunc) Test(ctx context.Context, typeName string, data Data) TestResult {
	return f(ctx, typeName, data)
}
