package token

import "sync/atomic"

// nextTokenID tracks the next available dynamic token ID.
// Dynamic tokens start after maxBuiltin (999).
var nextTokenID = int32(maxBuiltin)

// dynamicTokens maps registered dynamic tokens to their names.
// Protected by atomic operations for the ID counter,
// sync is handled at the profile registration level.
var dynamicTokens = make(map[TokenType]string)

// dynamicKeywords maps registered dynamic keyword names to their token types.
var dynamicKeywords = make(map[string]TokenType)

// Register registers a new dynamic token with the given name.
// This is used by dialect profiles to register dialect-specific keywords
// like ELSIF, IMMEDIATE, CATCH, etc. Registering the same name twice
// returns the already-assigned token type.
//
// Thread-safe: Uses atomic increment for ID generation.
// Registration happens at init() time in pkg/dialects packages.
func Register(name string) TokenType {
	if t, ok := dynamicKeywords[name]; ok {
		return t
	}

	id := atomic.AddInt32(&nextTokenID, 1)
	t := TokenType(id)

	dynamicTokens[t] = name
	dynamicKeywords[name] = t

	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	name, ok := dynamicTokens[t]
	return name, ok
}

// IsDynamic returns true if the token type is a dynamically registered token.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[TokenType]string {
	result := make(map[TokenType]string, len(dynamicTokens))
	for k, v := range dynamicTokens {
		result[k] = v
	}
	return result
}
