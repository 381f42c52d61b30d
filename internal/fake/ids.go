package fake

import (
	"fmt"
	"strconv"
	"time"
)

var peselWeights = [10]int{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// PESEL builds the 11-digit id for birth, a three-digit serial and the sex
// digit (even for women).
func PESEL(birth time.Time, serial, sex int) string {
	month := int(birth.Month())
	switch century := birth.Year() / 100; century {
	case 18:
		month += 80
	case 20:
		month += 20
	case 21:
		month += 40
	case 22:
		month += 60
	}
	body := fmt.Sprintf("%02d%02d%02d%03d%d", birth.Year()%100, month, birth.Day(), serial%1000, sex%10)
	return body + strconv.Itoa(peselCheck(body))
}

func peselCheck(body string) int {
	sum := 0
	for i := range 10 {
		sum += int(body[i]-'0') * peselWeights[i]
	}
	return (10 - sum%10) % 10
}

// ValidPESEL reports whether s is 11 digits with a correct check digit.
func ValidPESEL(s string) bool {
	if len(s) != 11 || !digits(s) {
		return false
	}
	return peselCheck(s[:10]) == int(s[10]-'0')
}

// NIP formats the nine leading digits plus check digit. It reports false
// when the digits have no valid check digit.
func NIP(d [9]int) (string, bool) {
	sum := 0
	for i, w := range nipWeights {
		sum += d[i] * w
	}
	check := sum % 11
	if check == 10 {
		return "", false
	}
	return fmt.Sprintf("%d%d%d-%d%d%d-%d%d-%d%d",
		d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7], d[8], check), true
}

// ValidNIP reports whether s, with dashes removed, is a checksummed tax id.
func ValidNIP(s string) bool {
	var raw []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			raw = append(raw, s[i])
		}
	}
	if len(raw) != 10 || !digits(string(raw)) {
		return false
	}
	sum := 0
	for i, w := range nipWeights {
		sum += int(raw[i]-'0') * w
	}
	return sum%11 == int(raw[9]-'0')
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
