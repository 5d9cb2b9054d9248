package store

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Query parameters carried by signed URLs.
const (
	ParamExpires   = "expires"
	ParamSignature = "signature"
)

// URLSigner issues and verifies HMAC-SHA256 signed artifact URLs of the form
//
//	<base>/artifacts/<key>?expires=<unix>&signature=<hex>
type URLSigner struct {
	secret []byte
	base   string
	now    func() time.Time
}

// NewURLSigner returns a signer. baseURL is the externally visible address
// of the HTTP server, without a trailing slash.
func NewURLSigner(secret, baseURL string) (*URLSigner, error) {
	if secret == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "signing secret is required")
	}
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &URLSigner{
		secret: []byte(secret),
		base:   strings.TrimRight(baseURL, "/"),
		now:    time.Now,
	}, nil
}

// Sign returns a URL for key valid for ttl.
func (s *URLSigner) Sign(key string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expires := s.now().Add(ttl).Unix()
	q := url.Values{}
	q.Set(ParamExpires, strconv.FormatInt(expires, 10))
	q.Set(ParamSignature, s.mac(key, expires))
	return s.base + "/artifacts/" + key + "?" + q.Encode()
}

// Verify checks a signature produced by Sign. It returns UNAUTHORIZED for a
// bad or expired signature.
func (s *URLSigner) Verify(key, expires, signature string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return errors.New(errors.ErrCodeUnauthorized, "invalid expiry")
	}
	if !hmac.Equal([]byte(signature), []byte(s.mac(key, exp))) {
		return errors.New(errors.ErrCodeUnauthorized, "invalid signature")
	}
	if s.now().Unix() > exp {
		return errors.New(errors.ErrCodeUnauthorized, "link expired")
	}
	return nil
}

func (s *URLSigner) mac(key string, expires int64) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(key))
	m.Write([]byte{0})
	m.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(m.Sum(nil))
}
