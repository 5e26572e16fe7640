package schema

// Property describes one field of a credential type.
type Property struct {
	Name string `json:"name"`
	// IsPassword marks the field as secret; redaction masks it.
	IsPassword bool `json:"isPassword,omitempty"`
	// NoDataExpression forbids expression values in the field, which makes
	// redaction mask even expression-looking values.
	NoDataExpression bool `json:"noDataExpression,omitempty"`
	// IsExpressionAllowed is informational for editors; redaction ignores it.
	IsExpressionAllowed bool `json:"isExpressionAllowed,omitempty"`
}

// Type is the raw, non-flattened description of a credential type as provided
// by the registry. Immutable after load.
type Type struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName,omitempty"`
	Extends     []string   `json:"extends,omitempty"`
	Properties  []Property `json:"properties"`
}
