package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const refCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789" // ตัด 0/O, 1/I/L กันอ่านผิด

// GenerateBookingReference สร้างรหัสจองสั้นๆ จาก timestamp + random suffix
// รูปแบบ: "GH" + base36(unix seconds, 6 ตัวท้าย) + 3 random chars เช่น "GHSK2M4VQ7X"
// ความน่าจะเป็นชนกันยอมรับได้ในสเกลของที่พักขนาดเล็ก และมี unique index + retry รองรับอยู่แล้ว
func GenerateBookingReference(now time.Time) (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(now.Unix(), 36))
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}

	var sb strings.Builder
	sb.WriteString("GH")
	sb.WriteString(ts)

	alphaLen := big.NewInt(int64(len(refCharset)))
	for i := 0; i < 3; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(refCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateSecureToken สร้าง token แบบ hex (length = bytes)
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
