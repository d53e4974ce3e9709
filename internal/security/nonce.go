package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Nonce issues and verifies the anti-forgery tokens carried by widget AJAX
// requests. Tokens are derived from a time window rather than stored, so
// verification needs no shared state: a token is accepted during the window
// it was issued in and the following one.
type Nonce struct {
	Secret string
	TTL    time.Duration

	// now is overridable in tests.
	now func() time.Time
}

const nonceLength = 16

// ActionWidget is the action every widget AJAX endpoint binds its tokens to.
const ActionWidget = "checkout_widget"

// Issue returns a token valid for the action until roughly two TTLs pass.
func (n Nonce) Issue(action string) string {
	return n.tokenFor(action, n.window(0))
}

// Verify reports whether the token was issued for the action within the
// current or previous window.
func (n Nonce) Verify(token, action string) bool {
	if token == "" {
		return false
	}
	for _, w := range []int64{n.window(0), n.window(-1)} {
		want := n.tokenFor(action, w)
		if hmac.Equal([]byte(want), []byte(token)) {
			return true
		}
	}
	return false
}

func (n Nonce) window(offset int64) int64 {
	ttl := n.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	clock := n.now
	if clock == nil {
		clock = time.Now
	}
	return clock().Unix()/int64(ttl.Seconds()) + offset
}

func (n Nonce) tokenFor(action string, window int64) string {
	mac := hmac.New(sha256.New, []byte(n.Secret))
	mac.Write([]byte(action))
	mac.Write([]byte{':'})
	var buf [8]byte
	w := window
	for i := 7; i >= 0; i-- {
		buf[i] = byte(w)
		w >>= 8
	}
	mac.Write(buf[:])
	return hex.EncodeToString(mac.Sum(nil))[:nonceLength]
}
