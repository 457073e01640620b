package validator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// MinPasswordLength is the shortest password the policy accepts.
const MinPasswordLength = 8

// maxUsernameSimilarity is the similarity ratio at or above which a password
// is rejected as too close to the username.
const maxUsernameSimilarity = 0.7

var nonWord = regexp.MustCompile(`\W+`)

// commonPasswords is a short deny-list of passwords seen in credential dumps.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"11111111": {}, "00000000": {}, "iloveyou": {}, "abc12345": {},
	"admin123": {}, "senha123": {}, "mudar123": {}, "letmein1": {},
	"welcome1": {}, "sunshine": {}, "football": {}, "princess": {},
}

// ValidatePassword checks password against the password policy and returns
// one message per violated rule. An empty result means the password is accepted.
func ValidatePassword(password, username string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if password != "" && isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if _, common := commonPasswords[strings.ToLower(password)]; common {
		problems = append(problems, "This password is too common.")
	}
	if similarToUsername(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}

	return problems
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarToUsername compares the password with the username and with each of
// its word parts, using the multiset match ratio of difflib.
func similarToUsername(password, username string) bool {
	if password == "" || username == "" {
		return false
	}
	p := strings.ToLower(password)
	u := strings.ToLower(username)

	for _, part := range append(nonWord.Split(u, -1), u) {
		if part == "" || exceedsLengthRatio(p, part) {
			continue
		}
		m := difflib.NewMatcher(strings.Split(p, ""), strings.Split(part, ""))
		if m.QuickRatio() >= maxUsernameSimilarity {
			return true
		}
	}
	return false
}

// exceedsLengthRatio reports whether part is too short relative to the
// password for the ratio to reach the threshold.
func exceedsLengthRatio(password, part string) bool {
	pwdLen := len([]rune(password))
	partLen := len([]rune(part))
	return pwdLen >= 10*partLen && float64(partLen) < maxUsernameSimilarity/2*float64(pwdLen)
}
