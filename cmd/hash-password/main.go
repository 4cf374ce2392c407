// Command hash-password prints bcrypt hashes for passwords given as
// arguments, or one per line on stdin. It is used to seed accounts directly
// in the database.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if *cost < bcrypt.MinCost || *cost > bcrypt.MaxCost {
		log.Fatalf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	hasher := auth.NewBcryptHasher(*cost)

	var failed int
	var err error
	if flag.NArg() > 0 {
		failed, err = hashPasswords(flag.Args(), os.Stdout, hasher)
	} else {
		failed, err = hashLines(os.Stdin, os.Stdout, hasher)
	}
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// hashLines hashes every line read from r.
func hashLines(r io.Reader, w io.Writer, hasher auth.PasswordHasher) (int, error) {
	var passwords []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			passwords = append(passwords, line)
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("failed to read passwords: %w", err)
	}
	return hashPasswords(passwords, w, hasher)
}

// hashPasswords writes one hash per password and reports how many were
// rejected. Rejected passwords are reported without echoing them.
func hashPasswords(passwords []string, w io.Writer, hasher auth.PasswordHasher) (int, error) {
	failed := 0
	for i, password := range passwords {
		if msg := domain.PasswordProblem(password); msg != "" {
			fmt.Fprintf(os.Stderr, "password %d rejected: %s\n", i+1, msg)
			failed++
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return failed, fmt.Errorf("failed to hash password %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
