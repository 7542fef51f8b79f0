// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bureau-foundation/paseto/lib/codec"
)

// Registered holds the claims PASETO reserves. All are optional.
type Registered struct {
	Issuer    string     `json:"iss,omitempty"`
	Subject   string     `json:"sub,omitempty"`
	Audience  string     `json:"aud,omitempty"`
	ExpiresAt *time.Time `json:"exp,omitempty"`
	NotBefore *time.Time `json:"nbf,omitempty"`
	IssuedAt  *time.Time `json:"iat,omitempty"`
	TokenID   string     `json:"jti,omitempty"`
}

// Carrier is implemented by any struct that embeds Registered.
type Carrier interface {
	RegisteredClaims() *Registered
}

// RegisteredClaims returns r.
func (r *Registered) RegisteredClaims() *Registered {
	return r
}

// registeredKeys are the payload keys Registered owns.
var registeredKeys = []string{"iss", "sub", "aud", "exp", "nbf", "iat", "jti"}

// Generic is a claims document with registered claims and any number
// of custom claims. Custom keys that collide with registered ones are
// ignored on encode; the Registered field wins.
type Generic struct {
	Registered
	Custom map[string]any
}

var _ Carrier = (*Generic)(nil)

func (g Generic) flatten(registeredMap map[string]any) map[string]any {
	merged := make(map[string]any, len(g.Custom)+len(registeredMap))
	for key, value := range g.Custom {
		merged[key] = value
	}
	for _, key := range registeredKeys {
		delete(merged, key)
	}
	for key, value := range registeredMap {
		merged[key] = value
	}
	return merged
}

// registeredMap renders the non-empty registered claims. Times stay
// time.Time so each encoding formats them its own way.
func (g Generic) registeredMap() map[string]any {
	values := make(map[string]any)
	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	setTime := func(key string, value *time.Time) {
		if value != nil {
			values[key] = *value
		}
	}
	set("iss", g.Issuer)
	set("sub", g.Subject)
	set("aud", g.Audience)
	setTime("exp", g.ExpiresAt)
	setTime("nbf", g.NotBefore)
	setTime("iat", g.IssuedAt)
	set("jti", g.TokenID)
	return values
}

// MarshalJSON flattens registered and custom claims into one object.
func (g Generic) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.flatten(g.registeredMap()))
}

// UnmarshalJSON splits an object into registered and custom claims.
func (g *Generic) UnmarshalJSON(data []byte) error {
	var registered Registered
	if err := json.Unmarshal(data, &registered); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	g.Registered = registered
	g.Custom = splitCustom(all)
	return nil
}

// MarshalCBOR is the CBOR counterpart of MarshalJSON.
func (g Generic) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(g.flatten(g.registeredMap()))
}

// UnmarshalCBOR is the CBOR counterpart of UnmarshalJSON.
func (g *Generic) UnmarshalCBOR(data []byte) error {
	var registered Registered
	if err := codec.Unmarshal(data, &registered); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	var all map[string]any
	if err := codec.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("claims: %w", err)
	}
	g.Registered = registered
	g.Custom = splitCustom(all)
	return nil
}

func splitCustom(all map[string]any) map[string]any {
	for _, key := range registeredKeys {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// Footer is the conventional JSON footer. KeyID selects the key that
// verifies the token.
type Footer struct {
	KeyID string `json:"kid,omitempty"`
}

// Encode returns the footer bytes, or nil for an empty footer so the
// token carries no footer field at all.
func (f *Footer) Encode() ([]byte, error) {
	if f == nil || *f == (Footer{}) {
		return nil, nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("claims: encoding footer: %w", err)
	}
	return data, nil
}

// ParseFooter decodes footer bytes. An empty footer yields the zero
// Footer. A footer that is not a JSON object is an error wrapping
// [ErrInvalidFooter].
func ParseFooter(data []byte) (Footer, error) {
	if len(data) == 0 {
		return Footer{}, nil
	}
	var footer Footer
	if err := json.Unmarshal(data, &footer); err != nil {
		return Footer{}, fmt.Errorf("%w: %v", ErrInvalidFooter, err)
	}
	return footer, nil
}
