// Command hashpw prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
// Usage:
//
//	hashpw <password>
//	echo -n <password> | hashpw
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})

	password, err := readPassword(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read password")
	}

	hash, err := hashPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}
	fmt.Println(hash)
}

func readPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password on stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
