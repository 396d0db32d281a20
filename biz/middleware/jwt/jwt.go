package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"our_culture/be/biz/config"
	rediscli "our_culture/be/biz/db/redis"
	"our_culture/be/biz/model/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrUnexpectedJwtMethod = errors.New("unexpected jwt method")
	ErrJwtInvalid          = errors.New("jwt is invalid")
	ErrJwtExpired          = errors.New("jwt is expired")
	ErrJwtRevoked          = errors.New("jwt is revoked")
)

const (
	accessTokenKeyPrefix  = "jwt_id_exist:"
	refreshTokenKeyPrefix = "refresh_token:"

	// TokenRemovalTTL is how long a rotated refresh token stays usable, so
	// that concurrent refresh calls from one client do not log it out.
	TokenRemovalTTL = time.Minute
)

type Payload struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

type Claims struct {
	jwt.RegisteredClaims
	Payload
}

// Claim converts the token payload back into a validated domain claim.
func (c *Claims) Claim() (domain.Claim, error) {
	return domain.NewClaim(c.UserID, domain.Role(c.Role))
}

// Issuer signs and verifies HS256 tokens of one kind (access or refresh).
// Every issued token id is whitelisted in redis for the token lifetime, so a
// token can be revoked before it expires.
type Issuer struct {
	issuer    string
	secret    []byte
	lifetime  time.Duration
	keyPrefix string
}

func NewIssuer(conf config.JWTConf) *Issuer {
	return &Issuer{
		issuer:    conf.Issuer,
		secret:    []byte(conf.AccessTokenSecret),
		lifetime:  accessExpiration(conf),
		keyPrefix: accessTokenKeyPrefix,
	}
}

func NewRefreshIssuer(conf config.JWTConf) *Issuer {
	return &Issuer{
		issuer:    conf.Issuer,
		secret:    []byte(conf.RefreshTokenSecret),
		lifetime:  refreshExpiration(conf),
		keyPrefix: refreshTokenKeyPrefix,
	}
}

func NewDefaultIssuer() *Issuer {
	return NewIssuer(config.GetJWTConfig())
}

func NewDefaultRefreshIssuer() *Issuer {
	return NewRefreshIssuer(config.GetJWTConfig())
}

func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

// Issue signs a token for claim and whitelists its id. It returns the token
// and its expiry as a unix timestamp.
func (i *Issuer) Issue(ctx context.Context, claim domain.Claim) (string, int64, error) {
	if _, err := domain.NewClaim(claim.ID, claim.Role); err != nil {
		return "", 0, err
	}

	tokenID := uuid.New().String()
	now := time.Now()
	token, err := i.sign(claim, tokenID, now)
	if err != nil {
		return "", 0, err
	}

	if err := i.whitelist(ctx, claim.ID, tokenID); err != nil {
		return "", 0, err
	}

	return token, now.Add(i.lifetime).Unix(), nil
}

// Parse checks signature, algorithm, issuer and expiry. It does not consult
// the whitelist.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrHashUnavailable
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrHashUnavailable) {
			return nil, ErrUnexpectedJwtMethod
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrJwtExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrJwtInvalid, err)
	}
	if !token.Valid {
		return nil, ErrJwtInvalid
	}
	if _, err := claims.Claim(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJwtInvalid, err)
	}

	return &claims, nil
}

// Verify parses the token and checks that its id is still whitelisted.
// Redis failures are returned as is so the caller can tell them apart from
// a rejected token.
func (i *Issuer) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := i.Parse(tokenStr)
	if err != nil {
		return nil, err
	}

	exist, err := rediscli.GetRedisClient().Get(ctx, i.tokenKey(claims.ID)).Bool()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if !exist {
		return nil, ErrJwtRevoked
	}

	return claims, nil
}

// Revoke removes the token id from the whitelist.
func (i *Issuer) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return nil
	}
	return rediscli.GetRedisClient().Del(ctx, i.tokenKey(claims.ID)).Err()
}

// Retire shortens the remaining life of a token to TokenRemovalTTL.
func (i *Issuer) Retire(ctx context.Context, claims *Claims) error {
	key := i.tokenKey(claims.ID)
	timeLeft := time.Until(claims.ExpiresAt.Time)
	if timeLeft <= 0 {
		return rediscli.GetRedisClient().Del(ctx, key).Err()
	}

	newTTL := TokenRemovalTTL
	if timeLeft < newTTL {
		newTTL = timeLeft
	}
	return rediscli.GetRedisClient().Expire(ctx, key, newTTL).Err()
}

func (i *Issuer) sign(claim domain.Claim, tokenID string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
		Payload: Payload{
			UserID: claim.ID,
			Role:   string(claim.Role),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) whitelist(ctx context.Context, userID, tokenID string) error {
	rdb := rediscli.GetRedisClient()
	key := i.tokenKey(tokenID)
	index := userTokensKey(userID)

	pipe := rdb.TxPipeline()
	pipe.Set(ctx, key, true, i.lifetime)
	pipe.SAdd(ctx, index, key)
	ttl := pipe.TTL(ctx, index)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// the index lives as long as the longest token it references
	if ttl.Val() < i.lifetime {
		return rdb.Expire(ctx, index, i.lifetime).Err()
	}
	return nil
}

func (i *Issuer) tokenKey(tid string) string {
	return i.keyPrefix + tid
}

// RevokeUser revokes every access and refresh token issued to the user.
func RevokeUser(ctx context.Context, userID string) error {
	rdb := rediscli.GetRedisClient()
	index := userTokensKey(userID)

	keys, err := rdb.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, append(keys, index)...).Err()
}

func userTokensKey(userID string) string {
	return fmt.Sprintf("user_tokens:%s", userID)
}

func accessExpiration(conf config.JWTConf) time.Duration {
	if conf.AccessExpiration > 0 {
		return time.Duration(conf.AccessExpiration) * time.Second
	}

	return 30 * time.Minute
}

func refreshExpiration(conf config.JWTConf) time.Duration {
	if conf.RefreshExpiration > 0 {
		return time.Duration(conf.RefreshExpiration) * time.Second
	}
	return 30 * 24 * time.Hour
}
