package mux

import (
	"time"

	"chipmaster-server/internal/config"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

// noopRecaptcha accepts every token; used when no secret is configured
type noopRecaptcha struct{}

func (noopRecaptcha) Verify(string) error {
	return nil
}

func newRecaptcha() recaptcha {
	secret := config.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Debug("recaptcha secret not set, verification disabled")
		return noopRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
