// Package validation holds the input checks shared by the create and claim
// workflows: phone normalization, wallet format checks by network family,
// and the phone-match authorization check.
package validation

import (
	"regexp"
	"strings"
)

// EVMWalletPattern matches an EVM address: 0x followed by 40 hex characters.
var EVMWalletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// SolanaWalletPattern matches a base58-encoded Solana address (32-44 chars,
// base58 alphabet excludes 0, O, I and l).
var SolanaWalletPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// MinPhoneDigits is the minimum number of digits a phone number must
// contain after normalization.
const MinPhoneDigits = 6

// NormalizePhone strips everything except digits and a single leading "+",
// and rewrites an international "00" prefix to "+". The result is the
// canonical form used both for storage and for claim-time comparison.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		} else if c == '+' && b.Len() == 0 {
			b.WriteByte(c)
		}
	}
	p := b.String()
	if strings.HasPrefix(p, "00") {
		p = "+" + p[2:]
	}
	return p
}

// ValidatePhone normalizes raw and checks it carries enough digits to be a
// dialable number. Returns the normalized phone and whether it is valid.
func ValidatePhone(raw string) (string, bool) {
	p := NormalizePhone(raw)
	digits := 0
	for i := 0; i < len(p); i++ {
		if p[i] >= '0' && p[i] <= '9' {
			digits++
		}
	}
	return p, digits >= MinPhoneDigits
}

// PhoneMatches reports whether a claim-submitted phone matches the phone
// stored on the link. Both sides are normalized independently so formatting
// differences ("+33 6 12..." vs "0033612...") never cause a false mismatch.
func PhoneMatches(submitted, stored string) bool {
	return NormalizePhone(submitted) == NormalizePhone(stored)
}

// ValidateWallet checks an address against the format rules of the given
// network's family. Addresses on networks whose family is unknown are
// accepted permissively; that is a deliberate policy so new networks can be
// used before this service learns about them.
func ValidateWallet(address, network string, networks *Networks) bool {
	address = strings.TrimSpace(address)
	switch networks.FamilyOf(network) {
	case FamilyEVM:
		return EVMWalletPattern.MatchString(address)
	case FamilySolana:
		return SolanaWalletPattern.MatchString(address)
	default:
		return address != ""
	}
}
