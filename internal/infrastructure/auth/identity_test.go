package auth

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/cfg"
	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "backend-secret"

func testDecoder() *Decoder {
	return NewDecoder(cfg.AuthCfg{
		JWTSecret:  testSecret,
		JWTMethods: []string{"HS256"},
		Leeway:     time.Second,
	})
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestDecoder_Decode(t *testing.T) {
	d := testDecoder()
	inHour := time.Now().Add(time.Hour).Unix()
	yesterday := time.Now().Add(-24 * time.Hour).Unix()
	secret := []byte(testSecret)

	tests := []struct {
		name    string
		token   string
		want    domain.Identity
		wantErr bool
	}{
		{
			name:  "cashier",
			token: signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": 12, "role": "cashier", "exp": inHour}),
			want:  domain.Identity{UserID: 12, Role: "cashier"},
		},
		{
			name:    "foreign key",
			token:   signed(t, jwt.SigningMethodHS256, []byte("attacker"), jwt.MapClaims{"id": 5, "role": "admin", "exp": inHour}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": 5, "role": "admin", "exp": yesterday}),
			wantErr: true,
		},
		{
			name:    "no expiry",
			token:   signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": 5, "role": "cashier"}),
			wantErr: true,
		},
		{
			name:    "method outside the allowed list",
			token:   signed(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"id": 5, "exp": inHour}),
			wantErr: true,
		},
		{
			name:    "unsigned",
			token:   signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"id": 5, "exp": inHour}),
			wantErr: true,
		},
		{
			name:    "missing id",
			token:   signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"role": "cashier", "exp": inHour}),
			wantErr: true,
		},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Decode(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecoder_Leeway(t *testing.T) {
	d := NewDecoder(cfg.AuthCfg{JWTSecret: testSecret, JWTMethods: []string{"HS256"}, Leeway: time.Minute})

	justExpired := time.Now().Add(-10 * time.Second).Unix()
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": 3, "exp": justExpired})

	id, err := d.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.UserID)
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = BearerToken("bearer  xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc"} {
		_, err := BearerToken(h)
		assert.ErrorIs(t, err, e.ErrUnauthorized, h)
	}
}

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()

	_, ok := TokenFromCtx(ctx)
	assert.False(t, ok)
	_, err := IdentityFromCtx(ctx)
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	ctx = WithToken(ctx, "t")
	ctx = WithIdentity(ctx, domain.Identity{UserID: 1, Role: "cashier"})

	tok, ok := TokenFromCtx(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t", tok)

	id, err := IdentityFromCtx(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.UserID)
}
