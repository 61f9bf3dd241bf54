package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

func tokenWithPayload(t *testing.T, payload any) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	encode := func(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }
	return encode([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + encode(data) + "." + encode([]byte("signature"))
}

func TestDecodeClaims(t *testing.T) {
	expiry := time.Now().Add(7 * 24 * time.Hour).Unix()
	token := tokenWithPayload(t, map[string]any{"sub": "alice", "exp": expiry})

	claims, ok := DecodeClaims(token)
	if !ok {
		t.Fatal("expected claims to decode")
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject: got %q want %q", claims.Subject, "alice")
	}
	if !claims.Expiry().Equal(time.Unix(expiry, 0)) {
		t.Fatalf("expiry: got %v want %v", claims.Expiry(), time.Unix(expiry, 0))
	}
}

func TestDecodeClaimsNeverErrors(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"not a jwt":        "just-a-string",
		"two segments":     "aaaa.bbbb",
		"four segments":    "a.b.c.d",
		"bad base64":       "head.!!!.sig",
		"payload not json": "head." + base64.RawURLEncoding.EncodeToString([]byte("not-json")) + ".sig",
		"missing subject":  tokenWithPayload(t, map[string]any{"exp": 123}),
		"blank subject":    tokenWithPayload(t, map[string]any{"sub": "   "}),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, ok := DecodeClaims(token)
			if ok {
				t.Fatalf("expected decode failure, got %#v", claims)
			}
			if claims != (Claims{}) {
				t.Fatalf("expected zero claims, got %#v", claims)
			}
		})
	}
}

func TestDecodeClaimsToleratesPadding(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"bob"}`))
	claims, ok := DecodeClaims("head." + payload + ".sig")
	if !ok {
		t.Fatal("expected padded payload to decode")
	}
	if claims.Subject != "bob" {
		t.Fatalf("subject: got %q want %q", claims.Subject, "bob")
	}
	if !claims.Expiry().IsZero() {
		t.Fatalf("expected zero expiry, got %v", claims.Expiry())
	}
}
