package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/accessvault/internal/crypto/domain"
	appValidation "github.com/allisson/accessvault/internal/validation"
)

// SecretsConfig configures the key-protection provider.
//
// Only the fields of the active Provider are required. KMS coordinates are not
// secret and are printed as-is; the static secrets and the KMS URI override are
// always masked.
type SecretsConfig struct {
	// Provider is the identity new payloads are protected with.
	Provider cryptoDomain.ProviderIdentity

	// GoogleKMSProjectID, GoogleKMSLocationID, GoogleKMSKeyRingID and GoogleKMSKeyID
	// address the Cloud KMS key.
	GoogleKMSProjectID  string
	GoogleKMSLocationID string
	GoogleKMSKeyRingID  string
	GoogleKMSKeyID      string
	// CloudKMSKeyURI overrides the key coordinates with a gocloud.dev secrets URL
	// (awskms://, azurekeyvault://, hashivault://, base64key://).
	CloudKMSKeyURI string
	// CloudKMSTimeout bounds a single KMS call.
	CloudKMSTimeout time.Duration
	// CloudKMSMaxRetries bounds retries of transient KMS failures.
	CloudKMSMaxRetries int

	// StaticSecret is the active pre-shared secret.
	StaticSecret string
	// StaticSecretRetired holds previous secrets kept for decrypt only.
	StaticSecretRetired []string
	// StaticSecretAlgorithm is the AEAD used by the static-secret provider.
	StaticSecretAlgorithm cryptoDomain.Algorithm
}

func loadSecretsConfig() SecretsConfig {
	rawProvider := env.GetString("SECRETS_SERVICE_PROVIDER", cryptoDomain.CloudKMS.String())
	provider, err := cryptoDomain.ParseProviderIdentity(rawProvider)
	if err != nil {
		// Kept as typed so Validate can report it.
		provider = cryptoDomain.ProviderIdentity(rawProvider)
	}

	staticSecret := env.GetString("STATIC_SECRET", "")
	if staticSecret == "" {
		staticSecret = env.GetString("IOS_CRYPTO_SECRET", "")
	}

	return SecretsConfig{
		Provider:              provider,
		GoogleKMSProjectID:    env.GetString("GOOGLE_KMS_PROJECT_ID", ""),
		GoogleKMSLocationID:   env.GetString("GOOGLE_KMS_LOCATION_ID", ""),
		GoogleKMSKeyRingID:    env.GetString("GOOGLE_KMS_KEY_RING_ID", ""),
		GoogleKMSKeyID:        env.GetString("GOOGLE_KMS_KEY_ID", ""),
		CloudKMSKeyURI:        env.GetString("CLOUD_KMS_KEY_URI", ""),
		CloudKMSTimeout:       env.GetDuration("CLOUD_KMS_TIMEOUT_SECONDS", 10, time.Second),
		CloudKMSMaxRetries:    env.GetInt("CLOUD_KMS_MAX_RETRIES", 3),
		StaticSecret:          staticSecret,
		StaticSecretRetired:   splitList(env.GetString("STATIC_SECRET_RETIRED", "")),
		StaticSecretAlgorithm: cryptoDomain.Algorithm(env.GetString("STATIC_SECRET_ALGORITHM", string(cryptoDomain.AESGCM))),
	}
}

// KMSKeyName returns the fully-qualified Cloud KMS key name.
func (s SecretsConfig) KMSKeyName() string {
	return fmt.Sprintf(
		"projects/%s/locations/%s/keyRings/%s/cryptoKeys/%s",
		s.GoogleKMSProjectID,
		s.GoogleKMSLocationID,
		s.GoogleKMSKeyRingID,
		s.GoogleKMSKeyID,
	)
}

// KMSKeeperURL returns the gocloud.dev secrets URL for the Cloud KMS key.
// CloudKMSKeyURI takes precedence over the key coordinates.
func (s SecretsConfig) KMSKeeperURL() string {
	if s.CloudKMSKeyURI != "" {
		return s.CloudKMSKeyURI
	}
	return "gcpkms://" + s.KMSKeyName()
}

// usesKeyCoordinates reports whether the Cloud KMS key is addressed by coordinates.
func (s SecretsConfig) usesKeyCoordinates() bool {
	return s.Provider == cryptoDomain.CloudKMS && s.CloudKMSKeyURI == ""
}

// Validate checks the fields of the active provider.
func (s SecretsConfig) Validate() error {
	isCloudKMS := s.Provider == cryptoDomain.CloudKMS
	isStatic := s.Provider == cryptoDomain.StaticSecret
	coordinates := s.usesKeyCoordinates()

	err := validation.ValidateStruct(&s,
		validation.Field(&s.Provider, validation.Required, validation.In(cryptoDomain.CloudKMS, cryptoDomain.StaticSecret)),
		validation.Field(&s.GoogleKMSProjectID, validation.When(coordinates, validation.Required, appValidation.NoWhitespace)),
		validation.Field(&s.GoogleKMSLocationID, validation.When(coordinates, validation.Required, appValidation.NoWhitespace)),
		validation.Field(&s.GoogleKMSKeyRingID, validation.When(coordinates, validation.Required, appValidation.NoWhitespace)),
		validation.Field(&s.GoogleKMSKeyID, validation.When(coordinates, validation.Required, appValidation.NoWhitespace)),
		validation.Field(&s.CloudKMSTimeout, validation.When(isCloudKMS, validation.Required, validation.Min(time.Millisecond))),
		validation.Field(&s.CloudKMSMaxRetries, validation.When(isCloudKMS, validation.Min(0), validation.Max(10))),
		validation.Field(&s.StaticSecret, validation.When(isStatic, validation.Required, appValidation.NotBlank, appValidation.NoComma)),
		validation.Field(&s.StaticSecretRetired, validation.When(isStatic, validation.Each(validation.Required, appValidation.NotBlank))),
		validation.Field(&s.StaticSecretAlgorithm, validation.When(isStatic, validation.Required, validation.In(cryptoDomain.AESGCM, cryptoDomain.ChaCha20))),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrConfigurationInvalid, err.Error())
	}
	return nil
}

// String renders the provider configuration. Secret-bearing fields are replaced
// by a fixed mask, never truncated.
func (s SecretsConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SECRETS_SERVICE_PROVIDER=%s\n", s.Provider)

	switch s.Provider {
	case cryptoDomain.CloudKMS:
		fmt.Fprintf(&b, "GOOGLE_KMS_PROJECT_ID=%s\n", s.GoogleKMSProjectID)
		fmt.Fprintf(&b, "GOOGLE_KMS_LOCATION_ID=%s\n", s.GoogleKMSLocationID)
		fmt.Fprintf(&b, "GOOGLE_KMS_KEY_RING_ID=%s\n", s.GoogleKMSKeyRingID)
		fmt.Fprintf(&b, "GOOGLE_KMS_KEY_ID=%s\n", s.GoogleKMSKeyID)
		fmt.Fprintf(&b, "CLOUD_KMS_KEY_URI=%s\n", mask(s.CloudKMSKeyURI))
		fmt.Fprintf(&b, "CLOUD_KMS_TIMEOUT_SECONDS=%d\n", int(s.CloudKMSTimeout.Seconds()))
		fmt.Fprintf(&b, "CLOUD_KMS_MAX_RETRIES=%d\n", s.CloudKMSMaxRetries)
	case cryptoDomain.StaticSecret:
		fmt.Fprintf(&b, "STATIC_SECRET=%s\n", redactedMask)
		fmt.Fprintf(&b, "STATIC_SECRET_RETIRED=%s\n", maskList(s.StaticSecretRetired))
		fmt.Fprintf(&b, "STATIC_SECRET_ALGORITHM=%s\n", s.StaticSecretAlgorithm)
	}

	return b.String()
}

// GoString keeps %#v from printing the raw struct.
func (s SecretsConfig) GoString() string {
	return s.String()
}

func maskList(values []string) string {
	masked := make([]string, len(values))
	for i := range values {
		masked[i] = redactedMask
	}
	return strings.Join(masked, ",")
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
