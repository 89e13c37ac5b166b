package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber normalizes a phone number to E.164 format. The country
// code is the dialing prefix stored alongside the number (e.g. "+1", "91");
// it is prepended when the number itself carries no international prefix.
func NormalizePhoneNumber(phone, countryCode string) (string, error) {
	phone = strings.TrimSpace(phone)

	if !strings.HasPrefix(phone, "+") && countryCode != "" {
		cc := strings.TrimSpace(countryCode)
		if !strings.HasPrefix(cc, "+") {
			cc = "+" + cc
		}
		phone = cc + phone
	}

	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
