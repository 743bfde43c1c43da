package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	OTPTTL = 15 * time.Minute

	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}
