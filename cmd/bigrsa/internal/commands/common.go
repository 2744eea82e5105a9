package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/bigrsa/internal/config"
	"github.com/taurusgroup/bigrsa/internal/logger"
	"github.com/taurusgroup/bigrsa/pkg/rsa"
)

// rotation used when logging to a file
const (
	logMaxSize    = 10
	logMaxBackups = 3
	logMaxAge     = 28
)

// NewRootCommand creates the bigrsa command with all its sub-commands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bigrsa",
		Short: "RSA key generation, encryption and signatures",
		Long: `bigrsa generates RSA keys and uses them for PKCS #1 v1.5 encryption
and SHA-256 signatures.

Private keys are stored in CBOR, public keys as a DER SEQUENCE { n, e }.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
	}
	rootCmd.PersistentFlags().String("log-level", config.LogLevelInfo, "Log level: debug, info, warning or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file instead of the console")

	InitRSACommands(rootCmd)
	return rootCmd
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("invalid log-level flag: %w", err)
	}
	file, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("invalid log-file flag: %w", err)
	}

	settings := config.DefaultLoggerSettings()
	settings.LogLevel = level
	if file != "" {
		settings.LogType = config.LogTypeFile
		settings.FilePath = file
		settings.MaxSize = logMaxSize
		settings.MaxBackups = logMaxBackups
		settings.MaxAge = logMaxAge
	}

	if err := logger.InitLogger(settings); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// commandLogger returns the logger installed by setupLogger, or the slog
// default if none was.
func commandLogger() *slog.Logger {
	l, err := logger.GetLogger()
	if err != nil {
		return slog.Default()
	}
	return l
}

func readPublicKey(path string) (*rsa.PublicKey, error) {
	der, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	pk, err := rsa.ParsePublicKeyDER(der)
	if err != nil {
		return nil, fmt.Errorf("public key %s: %w", path, err)
	}
	return pk, nil
}

func readPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var sk rsa.PrivateKey
	if err = sk.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("private key %s: %w", path, err)
	}
	return &sk, nil
}

// getStrings reads several string flags at once.
func getStrings(cmd *cobra.Command, names ...string) ([]string, error) {
	values := make([]string, 0, len(names))
	for _, name := range names {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", name, err)
		}
		if v == "" {
			return nil, fmt.Errorf("flag --%s is required", name)
		}
		values = append(values, v)
	}
	return values, nil
}
