package credential

import (
	"strings"

	"credvault/internal/domain/schema"

	"golang.org/x/exp/slog"
)

// Two distinct sentinels so unredaction can tell "value exists but was hidden"
// apart from "user left it blank".
const (
	// BlankedValue replaces a hidden non-empty secret.
	BlankedValue = "__credvault_BLANK_VALUE_a1c807c2-32a9-44e7-b3d4-1f0b2b9c6f3a"
	// EmptyValue replaces a secret field holding an empty string.
	EmptyValue = "__credvault_EMPTY_VALUE_58d1f9ce-0c27-4b86-9f1d-6e4a7b20c5e9"
)

// alwaysMasked are cross-cutting secret fields masked regardless of the type
// schema: rotating OAuth token blobs and the CSRF secret minted during the
// OAuth dance.
var alwaysMasked = map[string]bool{
	"oauthTokenData": true,
	"csrfSecret":     true,
}

// Redactor masks sensitive fields of decrypted payloads using the flattened
// type schema.
type Redactor struct {
	resolver *schema.Resolver
	log      *slog.Logger
}

func NewRedactor(resolver *schema.Resolver, log *slog.Logger) *Redactor {
	return &Redactor{
		resolver: resolver,
		log:      log.With("component", "redactor"),
	}
}

// Redact returns a copy of data with secret fields replaced by sentinels.
// When the credential's type cannot be resolved (removed or unknown type) the
// payload is returned unredacted: availability over strict masking for
// credentials whose connector was removed.
func (r *Redactor) Redact(data Data, typeName string) Data {
	props, err := r.resolver.Resolve(typeName)
	if err != nil {
		r.log.Warn("unresolvable credential type, returning payload unredacted",
			"type", typeName, "error", err)
		return data
	}

	byName := make(map[string]schema.Property, len(props))
	for _, p := range props {
		byName[p.Name] = p
	}

	out := make(Data, len(data))
	for key, value := range data {
		if alwaysMasked[key] {
			out[key] = maskValue(value)
			continue
		}

		prop, known := byName[key]
		if !known || !prop.IsPassword {
			out[key] = value
			continue
		}
		// An unresolved expression is not a secret value yet, unless the
		// field forbids expressions outright.
		if isExpression(value) && !prop.NoDataExpression {
			out[key] = value
			continue
		}

		out[key] = maskValue(value)
	}

	return out
}

// Unredact walks incoming and replaces every sentinel with the corresponding
// value from the previously saved payload, recursing where both sides hold an
// object under the same key. Non-sentinel fields pass through as submitted, so
// legitimate edits to unmasked fields survive.
func Unredact(incoming, saved Data) Data {
	out := make(Data, len(incoming))
	for key, value := range incoming {
		switch v := value.(type) {
		case string:
			if v == BlankedValue || v == EmptyValue {
				if prev, ok := saved[key]; ok {
					out[key] = prev
					continue
				}
				// Nothing saved under this key: skip restoration.
			}
			out[key] = v
		case map[string]any:
			if prevObj, ok := saved[key].(map[string]any); ok {
				out[key] = Unredact(v, prevObj)
				continue
			}
			// Structural mismatch: keep the submitted subtree untouched.
			out[key] = v
		default:
			out[key] = value
		}
	}
	return out
}

func maskValue(value any) any {
	if s, ok := value.(string); ok && s == "" {
		return EmptyValue
	}
	return BlankedValue
}

// isExpression reports whether a value is an unresolved expression
// placeholder, conventionally a string with an "=" prefix.
func isExpression(value any) bool {
	s, ok := value.(string)
	return ok && strings.HasPrefix(s, "=")
}
