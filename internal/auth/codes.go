package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// GenerateVerificationCode генерирует 6-значный числовой код
// равномерной выборкой из диапазона 100000-999999.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SecureCompare сравнивает секретные строки за константное время.
// Обычное сравнение строк дает timing side-channel, поэтому все
// сравнения кодов верификации и сброса идут через эту функцию.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
