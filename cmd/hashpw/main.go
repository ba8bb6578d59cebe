// hashpw, ADMIN_PASSWORD_HASH için bcrypt hash'i üretir ya da mevcut hash'i doğrular.
//
//	go run ./cmd/hashpw 'parola'
//	go run ./cmd/hashpw -check '$2a$10$...' 'parola'
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	check := flag.String("check", "", "doğrulanacak bcrypt hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt maliyeti")
	flag.Parse()

	password, err := readPassword(flag.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out, ok := run(password, *check, *cost)
	fmt.Println(out)
	if !ok {
		os.Exit(1)
	}
}

// readPassword, parolayı argümandan, yoksa stdin'in ilk satırından okur
func readPassword(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("parola verilmedi")
	}
	return line, nil
}

func run(password, hash string, cost int) (string, bool) {
	if hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return "Hash yanlış: " + err.Error(), false
		}
		return "Hash doğru!", true
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "Hash oluşturulamadı: " + err.Error(), false
	}
	return string(newHash), true
}
