package cpf

// IsValid reports whether the candidate is a well-formed CPF number.
// Formatting characters are ignored; anything that does not reduce to
// eleven digits with correct check digits is simply invalid. This is a
// predicate, not a parser: it never errors.
func IsValid(candidate string) bool {
	digits := make([]int, 0, 11)
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}

	// Repeated-digit sequences satisfy the checksum arithmetic but are
	// known-invalid sentinel values.
	repeated := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	sum1 := 0
	for i := 0; i < 9; i++ {
		sum1 += digits[i] * (10 - i)
	}
	dv1 := 11 - (sum1 % 11)
	if dv1 >= 10 {
		dv1 = 0
	}

	sum2 := 0
	for i := 0; i < 10; i++ {
		sum2 += digits[i] * (11 - i)
	}
	dv2 := 11 - (sum2 % 11)
	if dv2 >= 10 {
		dv2 = 0
	}

	return dv1 == digits[9] && dv2 == digits[10]
}
