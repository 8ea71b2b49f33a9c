package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenDetails holds a freshly issued access/refresh token pair.
type TokenDetails struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessUUID   string `json:"-"`
	RefreshUUID  string `json:"-"`
	AtExpires    int64  `json:"at_expires"`
	RtExpires    int64  `json:"rt_expires"`
}

// Claims carries the user identity inside a JWT.
// The token pair UUID lives in the registered ID (jti) claim.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
