package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSignature   = errors.New("webhook signature verification failed")
	ErrSignatureTooOld    = errors.New("webhook signature timestamp outside tolerance")
	ErrMalformedSignature = errors.New("malformed webhook signature header")
)

const signatureTolerance = 5 * time.Minute

// VerifySignature checks a webhook notification against the shared secret.
// The header carries `t=<unix>,v1=<hex hmac>` where the MAC is computed over
// `<unix>.<raw body>`. The raw, unparsed body must be used; any re-encoding
// breaks verification.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	if now.Sub(time.Unix(timestamp, 0)).Abs() > signatureTolerance {
		return ErrSignatureTooOld
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)

	expected := mac.Sum(nil)

	for _, signature := range signatures {
		decoded, decodeErr := hex.DecodeString(signature)
		if decodeErr != nil {
			continue
		}

		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// ComputeSignature produces a valid signature header for the payload. Used
// by tests and by local tooling that replays archived events.
func ComputeSignature(payload []byte, secret string, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)

	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func parseSignatureHeader(header string) (timestamp int64, signatures []string, err error) {
	if header == "" {
		return 0, nil, ErrMalformedSignature
	}

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, ErrMalformedSignature
		}

		switch key {
		case "t":
			timestamp, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrMalformedSignature
			}
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrMalformedSignature
	}

	return timestamp, signatures, nil
}
