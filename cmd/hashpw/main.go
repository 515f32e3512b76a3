// Command hashpw generates the bcrypt hash for the ADMIN_PASSWORD_HASH
// environment variable used by the local identity provider.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bagaswara/porto/pkg/auth"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")

	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")

	if err := auth.ValidatePassword(password); err != nil {
		fmt.Fprintln(os.Stderr, "warning: password does not meet strength recommendations")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
