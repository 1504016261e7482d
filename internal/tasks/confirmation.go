// Package tasks names the out-of-process tasks and their argument
// contracts. Only these explicit arguments cross the process boundary.
package tasks

import "fmt"

const SendConfirmationEmail = "email.confirmation.v1"

const emailArg = "email"

func ConfirmationArgs(email string) map[string]string {
	return map[string]string{emailArg: email}
}

func EmailFromArgs(args map[string]string) (string, error) {
	email, ok := args[emailArg]
	if !ok || email == "" {
		return "", fmt.Errorf("args[%s] is missing", emailArg)
	}
	return email, nil
}
