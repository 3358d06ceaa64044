package seal

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// SealObject seals the JSON encoding of v and returns it in raw base64url
// form, suitable for embedding in URLs, headers and cookies.
func SealObject(ctx context.Context, p Provider, v interface{}) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithMessage(err, "encode object")
	}
	sealed, err := p.Seal(ctx, body)
	if err != nil {
		return "", errors.WithMessage(err, "seal object")
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// OpenObject reverses SealObject: it decodes the base64url string, opens
// the sealed payload and unmarshals the result into v.
func OpenObject(ctx context.Context, p Provider, sealed string, v interface{}) error {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return errors.WithMessage(err, "decode sealed value")
	}
	body, err := p.Open(ctx, raw)
	if err != nil {
		return err
	}
	return errors.WithMessage(json.Unmarshal(body, v), "decode object")
}
