package jwt

import (
	"strconv"
	"time"

	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
)

type authRepo struct {
	secret []byte
}

func CreateAuthRepo(secret string) (domain.AuthRepo, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	return &authRepo{secret: []byte(secret)}, nil
}

func (a *authRepo) GenerateToken(sub string, iat, exp time.Time) (string, error) {
	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, jwtGo.MapClaims{
		"sub": sub,
		"iat": iat.Unix(),
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token failed")
	}
	return signed, nil
}

func (a *authRepo) VerifyToken(token string) (int64, error) {
	parsed, err := jwtGo.Parse(token, func(t *jwtGo.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtGo.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if errors.Is(err, jwtGo.ErrTokenExpired) {
		return 0, errors.Wrap(domain.ErrExpired, "token expired")
	} else if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidData, "parse token failed")
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidData, "get subject failed")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidData, "parse subject failed")
	}
	return userID, nil
}
