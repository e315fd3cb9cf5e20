package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/cfg"
	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/golang-jwt/jwt/v5"
)

type tokenKey struct{}

type identityKey struct{}

// Claims - поля, которые бэкенд кладёт в access-токен.
type Claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decoder проверяет подпись и срок действия bearer-токена и достаёт из него
// личность кассира. Ключ общий с бэкендом, который выпускает токены.
type Decoder struct {
	parser *jwt.Parser
	key    []byte
}

func NewDecoder(config cfg.AuthCfg) *Decoder {
	return &Decoder{
		parser: jwt.NewParser(
			jwt.WithValidMethods(config.JWTMethods),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(config.Leeway),
		),
		key: []byte(config.JWTSecret),
	}
}

// BearerToken извлекает токен из значения заголовка Authorization.
func BearerToken(header string) (string, error) {
	const op = "auth.BearerToken"

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", e.Wrap(op, e.ErrUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", e.Wrap(op, e.ErrUnauthorized)
	}
	return token, nil
}

// Decode проверяет подпись и срок действия токена и возвращает личность кассира.
func (d *Decoder) Decode(token string) (domain.Identity, error) {
	const op = "Decoder.Decode"

	var claims Claims
	if _, err := d.parser.ParseWithClaims(token, &claims, d.keyFunc); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w: %w", op, e.ErrUnauthorized, err)
	}
	if claims.ID <= 0 {
		return domain.Identity{}, e.Wrap(op, e.ErrUnauthorized)
	}

	return domain.Identity{UserID: claims.ID, Role: claims.Role}, nil
}

func (d *Decoder) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return d.key, nil
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromCtx возвращает исходный bearer-токен текущего запроса, если он есть.
func TokenFromCtx(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromCtx(ctx context.Context) (domain.Identity, error) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	if !ok {
		return domain.Identity{}, e.ErrUnauthorized
	}
	return id, nil
}
