package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var fromPassphrase bool

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an encryption key for ENCRYPTION_KEY",
	Long: `Generates a random 256-bit key, hex encoded. With --passphrase the key
is not printed; instead the passphrase is read from the terminal twice and you
are told to set ENCRYPTION_PASSPHRASE, so the derived key never touches disk.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if fromPassphrase {
			return confirmPassphrase()
		}

		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("generate key: %w", err)
		}

		fmt.Println(hex.EncodeToString(key))
		fmt.Fprintln(os.Stderr, color.YellowString("Store this key safely. Losing it makes every credential unreadable."))
		return nil
	},
}

func confirmPassphrase() error {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Fprint(os.Stderr, "Repeat passphrase: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	fmt.Fprintln(os.Stderr)

	if string(first) != string(second) {
		return fmt.Errorf("passphrases do not match")
	}
	if len(first) < 12 {
		return fmt.Errorf("passphrase must be at least 12 characters")
	}

	fmt.Fprintln(os.Stderr, color.GreenString("Passphrase accepted. Set it as ENCRYPTION_PASSPHRASE on the server."))
	return nil
}

func init() {
	keygenCmd.Flags().BoolVarP(&fromPassphrase, "passphrase", "p", false, "verify a passphrase instead of generating a key")
	rootCmd.AddCommand(keygenCmd)
}
