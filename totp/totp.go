// Package totp implements RFC 6238 time-based one-time passwords with the
// shared secret held in a locked container for its whole lifetime.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"hash"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/secmem"
)

// TOTP generates and verifies one-time codes for one enrolled secret.
type TOTP struct {
	Secret      *secmem.Container
	Algorithm   string
	Digits      int
	Period      int
	Issuer      string
	AccountName string
}

// New enrolls a fresh random secret with the RFC defaults of SHA1, six
// digits and a 30 second period.
func New(issuer, account string) (*TOTP, error) {
	secret, err := secmem.RandomBytes(20)
	if err != nil {
		return nil, err
	}
	return &TOTP{
		Secret:      secmem.NewFromBytes(secret),
		Algorithm:   "SHA1",
		Digits:      6,
		Period:      30,
		Issuer:      issuer,
		AccountName: account,
	}, nil
}

// URI formats the enrollment as specified in
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func (t *TOTP) URI() (string, error) {
	sb, err := t.Secret.Export()
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer memguard.WipeBytes(sb)

	issuer := url.PathEscape(t.Issuer)

	b := strings.Builder{}
	b.WriteString("otpauth://totp/")
	b.WriteString(issuer)
	b.WriteRune(':')
	b.WriteString(url.PathEscape(t.AccountName))
	b.WriteString("?secret=")
	b.WriteString(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sb))
	b.WriteString("&issuer=")
	b.WriteString(issuer)
	b.WriteString("&algorithm=")
	b.WriteString(t.Algorithm)
	b.WriteString("&digits=")
	b.WriteString(strconv.Itoa(t.Digits))
	b.WriteString("&period=")
	b.WriteString(strconv.Itoa(t.Period))

	return b.String(), nil
}

// Generate returns the code for the current time step.
func (t *TOTP) Generate() (string, error) {
	return t.GenerateAt(time.Now())
}

// GenerateAt returns the code for the time step containing at.
func (t *TOTP) GenerateAt(at time.Time) (string, error) {
	if t.Period <= 0 {
		return "", errors.Errorf("totp: invalid period: %d", t.Period)
	}
	if t.Digits != 6 && t.Digits != 8 {
		return "", errors.Errorf("totp: invalid digits: %d", t.Digits)
	}

	sb, err := t.Secret.Export()
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer memguard.WipeBytes(sb)

	return generateOTP(sb, t.Algorithm, t.Digits, at.Unix()/int64(t.Period))
}

// Verify checks code against the current step and one step of clock skew
// in each direction.
func (t *TOTP) Verify(code string) (bool, error) {
	now := time.Now()
	for _, skew := range []time.Duration{0, -1, 1} {
		at := now.Add(skew * time.Duration(t.Period) * time.Second)
		expected, err := t.GenerateAt(at)
		if err != nil {
			return false, err
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true, nil
		}
	}
	return false, nil
}

func generateOTP(secret []byte, algorithm string, digits int, counter int64) (string, error) {
	var mac hash.Hash
	switch algorithm {
	case "SHA1":
		mac = hmac.New(sha1.New, secret)
	case "SHA256":
		mac = hmac.New(sha256.New, secret)
	case "SHA512":
		mac = hmac.New(sha512.New, secret)
	default:
		return "", errors.Errorf("totp: invalid algorithm: %q", algorithm)
	}

	counterBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBytes, uint64(counter))
	mac.Write(counterBytes)

	h := mac.Sum(nil)
	offset := h[len(h)-1] & 0xF
	h = h[offset : offset+4]
	h[0] &= 0x7F

	otp := binary.BigEndian.Uint32(h) % uint32(math.Pow10(digits))

	code := strconv.Itoa(int(otp))
	for len(code) != digits {
		code = "0" + code
	}
	return code, nil
}
