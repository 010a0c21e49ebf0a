package security

import (
	"crypto/rand"
	"fmt"
)

// accessCodeCharset omits characters that read ambiguously on a printed
// card (0/O, 1/I). Its length divides 256 so one random byte maps evenly.
var accessCodeCharset = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// GenerateAccessCode produces a random uppercase code influencers type at
// login. Codes are compared case-insensitively downstream.
func GenerateAccessCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(accessCodeCharset))
		if err != nil {
			return "", err
		}
		result[i] = accessCodeCharset[idx]
	}
	return string(result), nil
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	var buff = make([]byte, 1)
	if _, err := rand.Read(buff); err != nil {
		return 0, err
	}
	return int(buff[0]) % max, nil
}
