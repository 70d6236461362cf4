// Package auth issues and verifies API credentials: HS256 session tokens
// and Google ID tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a session token.
type Claims struct {
	UserID     uint
	CompanyID  uint
	EmployeeID uint
	Role       string
}

type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) Issue(user *models.User) (string, error) {
	now := t.now()

	claims := jwt.MapClaims{
		"sub":       user.ID,
		"companyId": user.CompanyID,
		"role":      user.Role,
		"exp":       now.Add(tokenTTL).Unix(),
		"iat":       now.Unix(),
	}
	if user.EmployeeID != nil {
		claims["employeeId"] = *user.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok1 := mc["sub"].(float64)
	companyID, ok2 := mc["companyId"].(float64)
	role, _ := mc["role"].(string)
	if !ok1 || !ok2 || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		UserID:    uint(sub),
		CompanyID: uint(companyID),
		Role:      role,
	}
	if emp, ok := mc["employeeId"].(float64); ok {
		claims.EmployeeID = uint(emp)
	}
	return claims, nil
}
