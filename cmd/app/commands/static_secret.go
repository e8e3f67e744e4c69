package commands

import (
	"encoding/base64"
	"fmt"
	"io"

	cryptoService "github.com/allisson/accessvault/internal/crypto/service"
)

const staticSecretSize = 32

// RunGenerateStaticSecret prints a fresh random secret for the static-secret provider
// together with the key reference payloads protected by it will carry.
//
// Rotation: move the current STATIC_SECRET into STATIC_SECRET_RETIRED, set the new
// one, then run rewrap-credentials --target static-secret.
func RunGenerateStaticSecret(random io.Reader, writer io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw := make([]byte, staticSecretSize)
	if _, err := io.ReadFull(random, raw); err != nil {
		return fmt.Errorf("failed to generate static secret: %w", err)
	}
	secret := base64.StdEncoding.EncodeToString(raw)
	for i := range raw {
		raw[i] = 0
	}

	keyRef, err := cryptoService.StaticKeyFingerprint([]byte(secret))
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"static_secret": secret,
			"key_ref":       keyRef,
		})
	}

	_, err = fmt.Fprintf(writer,
		"# Key reference: %s\nSECRETS_SERVICE_PROVIDER=\"static-secret\"\nSTATIC_SECRET=\"%s\"\n",
		keyRef, secret,
	)
	return err
}
