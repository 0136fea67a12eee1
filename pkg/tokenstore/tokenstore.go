package tokenstore

// Storage keys for the JWT credential pair. These are the only two keys
// the gateway ever touches.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is scoped key-value persistence for tokens. Implementations must
// treat a missing key as ("", nil), not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
