package commands

import (
	"fmt"
	"io"

	"github.com/allisson/accessvault/internal/config"
)

// RunShowConfig prints the effective configuration with secrets masked, followed by
// the validation result. The dump is written even when the configuration is invalid.
func RunShowConfig(cfg *config.Config, writer io.Writer) error {
	if _, err := io.WriteString(writer, cfg.String()); err != nil {
		return err
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		if _, err := fmt.Fprintf(writer, "# INVALID: %v\n", validationErr); err != nil {
			return err
		}
		return validationErr
	}

	_, err := io.WriteString(writer, "# OK\n")
	return err
}
