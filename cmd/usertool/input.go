package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const minPasswordLen = 6

var errPasswordMismatch = errors.New("passwords do not match")

// readPassword is swapped in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

// promptPassword reads the password twice without echo.
func promptPassword(w io.Writer) (string, error) {
	first, err := readLine(w, "Enter password: ")
	if err != nil {
		return "", err
	}
	second, err := readLine(w, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func readLine(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
