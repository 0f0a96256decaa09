// Command hash-generator prints the bcrypt hash of a password. It exists for
// seeding user rows by hand, where the hashed_password column needs a value
// the API would accept at login.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	password := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if password == "" {
		// Prompting keeps the password out of shell history.
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "no password given")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
