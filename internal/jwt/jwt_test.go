package jwt

import (
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func loadTestKeys() {
	publicKey = loadPublicKey(filepath.Join("testdata", "public.pem"))
	privateKey = loadPrivateKey(filepath.Join("testdata", "private.key"))
}

func TestSignAndValidProfileID(t *testing.T) {
	loadTestKeys()

	profileID := uuid.New().String()
	signed, err := Sign(profileID)
	assert.NoError(t, err)

	id, err := ValidProfileID(signed)
	assert.NoError(t, err)
	assert.Equal(t, profileID, id)
}

func TestValidProfileID_InvalidAudience(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.StandardClaims{
		Audience: "different-audience",
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
		Subject:  "profile",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidProfileID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", id)
}

func TestValidProfileID_InvalidIssuer(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   "invalid-issuer",
		Subject:  "profile",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidProfileID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", id)
}

func TestValidProfileID_MissingSubject(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidProfileID(signedToken)
	assert.EqualError(t, err, "missing subject")
	assert.Equal(t, "", id)
}

func TestValidProfileID_WrongSigningMethod(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.StandardClaims{
		Audience: Audience,
		Issuer:   Issuer,
		Subject:  "profile",
	})

	signedToken, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Error(err)
		return
	}

	_, err = ValidProfileID(signedToken)
	assert.Error(t, err)
}
