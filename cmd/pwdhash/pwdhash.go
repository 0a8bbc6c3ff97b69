package main

import (
	"fmt"
	"os"

	"github.com/quorumhq/quorum/pkg/pwdhash"
)

// Takes a PIN as the first argument, and prints out a base64 encoded version of the hashed PIN.
// You can use this to set a principal's PIN manually, if you need to do that.
// For example:
// sqlite3 quorum.sqlite "update principal set pin_hash = 'HASHEDPIN' where slug = 'acme-admin'"

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: pwdhash <pin>\n")
		os.Exit(1)
	}
	pin := os.Args[1]
	fmt.Printf("%v\n", pwdhash.HashPINBase64(pin))
}
