package commands

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/bigrsa/internal/config"
	"github.com/taurusgroup/bigrsa/pkg/pool"
	"github.com/taurusgroup/bigrsa/pkg/rsa"
)

// ErrInvalidSignature is returned by the verify command when the signature does not match.
var ErrInvalidSignature = errors.New("signature is invalid")

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	// randomness for key generation and encryption
	rand io.Reader
}

// NewRSACommandHandler creates a handler drawing randomness from rand.
func NewRSACommandHandler(rand io.Reader) *RSACommandHandler {
	return &RSACommandHandler{rand: rand}
}

// GenerateKeysCmd generates a key pair and persists it in the selected directory,
// under a fresh identifier.
func (h *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	settings := config.DefaultKeySettings()
	var err error
	if settings.KeySize, err = cmd.Flags().GetInt("key-size"); err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	if settings.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return fmt.Errorf("invalid workers flag: %w", err)
	}
	if settings.KeyDir, err = cmd.Flags().GetString("key-dir"); err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}
	if err = settings.Validate(); err != nil {
		return err
	}

	log := commandLogger()
	log.Info("generating key", "bits", settings.KeySize)
	sk, err := rsa.GenerateKey(h.rand, settings.KeySize, pool.NewPool(settings.Workers))
	if err != nil {
		return err
	}

	privateData, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	publicData, err := sk.Public().MarshalDER()
	if err != nil {
		return err
	}

	uniqueID := uuid.New()
	privatePath := filepath.Join(settings.KeyDir, fmt.Sprintf("%s-private-key.cbor", uniqueID))
	if err = os.WriteFile(privatePath, privateData, 0600); err != nil {
		return err
	}
	publicPath := filepath.Join(settings.KeyDir, fmt.Sprintf("%s-public-key.der", uniqueID))
	if err = os.WriteFile(publicPath, publicData, 0644); err != nil {
		return err
	}

	log.Info("key pair saved",
		"private", privatePath,
		"public", publicPath,
		"fingerprint", hex.EncodeToString(sk.Fingerprint()))
	fmt.Fprintln(cmd.OutOrStdout(), uniqueID.String())
	return nil
}

// EncryptCmd encrypts a file under a public key.
func (h *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	flags, err := getStrings(cmd, "input-file", "output-file", "public-key")
	if err != nil {
		return err
	}
	inputFile, outputFile, publicKeyPath := flags[0], flags[1], flags[2]

	pk, err := readPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	plainText, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	cipherText, err := pk.Encrypt(h.rand, plainText)
	if err != nil {
		return err
	}
	if err = os.WriteFile(outputFile, cipherText, 0600); err != nil {
		return err
	}

	commandLogger().Info("encrypted data saved", "path", outputFile)
	return nil
}

// DecryptCmd decrypts a file with a private key.
func (h *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	flags, err := getStrings(cmd, "input-file", "output-file", "private-key")
	if err != nil {
		return err
	}
	inputFile, outputFile, privateKeyPath := flags[0], flags[1], flags[2]

	sk, err := readPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}
	cipherText, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	plainText, err := sk.Decrypt(cipherText)
	if err != nil {
		return err
	}
	if err = os.WriteFile(outputFile, plainText, 0600); err != nil {
		return err
	}

	commandLogger().Info("decrypted data saved", "path", outputFile)
	return nil
}

// SignCmd signs the SHA-256 digest of a file and saves the signature.
func (h *RSACommandHandler) SignCmd(cmd *cobra.Command, _ []string) error {
	flags, err := getStrings(cmd, "input-file", "output-file", "private-key")
	if err != nil {
		return err
	}
	inputFile, signatureFile, privateKeyPath := flags[0], flags[1], flags[2]

	sk, err := readPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	signature, err := sk.Sign(data)
	if err != nil {
		return err
	}
	if err = os.WriteFile(signatureFile, signature, 0600); err != nil {
		return err
	}

	commandLogger().Info("signature saved", "path", signatureFile)
	return nil
}

// VerifyCmd checks a signature over a file.
func (h *RSACommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) error {
	flags, err := getStrings(cmd, "input-file", "signature-file", "public-key")
	if err != nil {
		return err
	}
	inputFile, signatureFile, publicKeyPath := flags[0], flags[1], flags[2]

	pk, err := readPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}
	signature, err := os.ReadFile(filepath.Clean(signatureFile))
	if err != nil {
		return err
	}

	if !pk.Verify(data, signature) {
		return ErrInvalidSignature
	}
	commandLogger().Info("signature is valid", "input", inputFile)
	return nil
}

// FingerprintCmd prints the fingerprint of a public key.
func (h *RSACommandHandler) FingerprintCmd(cmd *cobra.Command, _ []string) error {
	flags, err := getStrings(cmd, "public-key")
	if err != nil {
		return err
	}
	pk, err := readPublicKey(flags[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pk.Fingerprint()))
	return nil
}

// InitRSACommands registers RSA-related commands.
func InitRSACommands(rootCmd *cobra.Command) {
	handler := NewRSACommandHandler(rand.Reader)
	defaults := config.DefaultKeySettings()

	var keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	keygenCmd.Flags().Int("key-size", defaults.KeySize, "Bit length of the modulus")
	keygenCmd.Flags().Int("workers", defaults.Workers, "Goroutines searching for primes, 0 for one per CPU")
	keygenCmd.Flags().String("key-dir", defaults.KeyDir, "Directory to store the keys")
	rootCmd.AddCommand(keygenCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file using RSA",
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().String("input-file", "", "Path to input file which needs to be encrypted")
	encryptCmd.Flags().String("output-file", "", "Path to encrypted output file")
	encryptCmd.Flags().String("public-key", "", "Path to DER public key")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file using RSA",
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().String("input-file", "", "Path to encrypted file")
	decryptCmd.Flags().String("output-file", "", "Path to decrypted output file")
	decryptCmd.Flags().String("private-key", "", "Path to CBOR private key")
	rootCmd.AddCommand(decryptCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file using RSA with SHA-256",
		RunE:  handler.SignCmd,
	}
	signCmd.Flags().String("input-file", "", "Path to file which needs to be signed")
	signCmd.Flags().String("output-file", "", "Path to signature output file")
	signCmd.Flags().String("private-key", "", "Path to CBOR private key")
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a file",
		RunE:  handler.VerifyCmd,
	}
	verifyCmd.Flags().String("input-file", "", "Path to file which needs to be validated")
	verifyCmd.Flags().String("signature-file", "", "Path to signature input file")
	verifyCmd.Flags().String("public-key", "", "Path to DER public key")
	rootCmd.AddCommand(verifyCmd)

	var fingerprintCmd = &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of a public key",
		RunE:  handler.FingerprintCmd,
	}
	fingerprintCmd.Flags().String("public-key", "", "Path to DER public key")
	rootCmd.AddCommand(fingerprintCmd)
}
