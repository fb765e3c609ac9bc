package chunk

// Type is a chunk type.
// The case of each byte encodes a property of the chunk.
type Type [4]byte

// TypeFromBytes returns the Type made of the given bytes.
// Bytes are not validated, since a decoded chunk type is
// whatever was found in the file.
func TypeFromBytes(b [4]byte) Type {
	return Type(b)
}

// ParseType parses a chunk type from a string.
// All rules are checked, and all violations are reported together.
func ParseType(s string) (Type, error) {
	var reasons []error

	if !isASCII(s) {
		reasons = append(reasons, ErrNonASCII)
	}

	if len(s) != 4 {
		reasons = append(reasons, &InvalidLengthError{Length: len(s)})
	}

	if !isAlphabetic(s) {
		reasons = append(reasons, ErrNonAlphabetic)
	}

	if reasons != nil {
		return Type{}, &ValidationError{Reasons: reasons}
	}

	var t Type
	copy(t[:], s)
	return t, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isUpper(s[i]) && !isLower(s[i]) {
			return false
		}
	}
	return true
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// Bytes returns the raw bytes of the type.
func (t Type) Bytes() [4]byte {
	return t
}

// IsCritical returns whether the chunk is critical (as opposed to ancillary).
func (t Type) IsCritical() bool {
	return isUpper(t[0])
}

// IsPublic returns whether the chunk is public (as opposed to private).
func (t Type) IsPublic() bool {
	return isUpper(t[1])
}

// IsReservedBitValid returns whether the reserved bit is set correctly.
func (t Type) IsReservedBitValid() bool {
	return isUpper(t[2])
}

// IsSafeToCopy returns whether the chunk can be copied by editors
// that do not recognize it.
func (t Type) IsSafeToCopy() bool {
	return isLower(t[3])
}

// IsValid returns whether the type conforms to the current PNG version.
func (t Type) IsValid() bool {
	return t.IsReservedBitValid()
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t[:])
}
