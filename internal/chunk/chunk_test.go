package chunk

import (
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMessage = "This is where your secret message will be!"

func testChunkBytes(length uint32, typ string, data []byte, crc uint32) []byte {
	buf := binary.BigEndian.AppendUint32(nil, length)
	buf = append(buf, typ...)
	buf = append(buf, data...)
	return binary.BigEndian.AppendUint32(buf, crc)
}

var chunkEnc = testChunkBytes(42, "RuSt", []byte(testMessage), 2882656334)

func TestNew(t *testing.T) {
	typ, err := ParseType("RuSt")
	require.NoError(t, err)

	c := New(typ, []byte(testMessage))
	require.Equal(t, uint32(42), c.Length())
	require.Equal(t, uint32(2882656334), c.CRC())
	require.Equal(t, typ, c.Type())
	require.Equal(t, []byte(testMessage), c.Data())
}

func TestNewEmpty(t *testing.T) {
	c := New(TypeFromBytes([4]byte{'I', 'E', 'N', 'D'}), nil)
	require.Equal(t, uint32(0), c.Length())
	require.Equal(t, uint32(0xae426082), c.CRC())
	require.Equal(t, []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}, c.Marshal())
}

func TestUnmarshal(t *testing.T) {
	c, err := Unmarshal(chunkEnc)
	require.NoError(t, err)
	require.Equal(t, uint32(42), c.Length())
	require.Equal(t, "RuSt", c.Type().String())
	require.Equal(t, uint32(2882656334), c.CRC())

	str, err := c.DataAsString()
	require.NoError(t, err)
	require.Equal(t, testMessage, str)
}

func TestUnmarshalCopiesData(t *testing.T) {
	buf := append([]byte(nil), chunkEnc...)
	c, err := Unmarshal(buf)
	require.NoError(t, err)

	buf[HeaderSize] = 'X'
	require.Equal(t, []byte(testMessage), c.Data())
}

func TestMarshal(t *testing.T) {
	typ, err := ParseType("RuSt")
	require.NoError(t, err)

	buf := New(typ, []byte(testMessage)).Marshal()
	require.Len(t, buf, 54)
	require.Equal(t, chunkEnc, buf)
}

func TestRoundTrip(t *testing.T) {
	for _, ca := range []struct {
		typ  string
		data []byte
	}{
		{"RuSt", []byte(testMessage)},
		{"tEXt", []byte{}},
		{"zzzz", []byte{0x00, 0xff, 0x10, 0x80}},
		{"IDAT", make([]byte, 70000)},
	} {
		t.Run(ca.typ, func(t *testing.T) {
			typ, err := ParseType(ca.typ)
			require.NoError(t, err)

			c := New(typ, ca.data)
			dec, err := Unmarshal(c.Marshal())
			require.NoError(t, err)
			require.Equal(t, c.Type(), dec.Type())
			require.Equal(t, c.Length(), dec.Length())
			require.Equal(t, c.CRC(), dec.CRC())
			require.Equal(t, len(ca.data), len(dec.Data()))
			require.Equal(t, c.Marshal(), dec.Marshal())
		})
	}
}

func TestUnmarshalCRCMismatch(t *testing.T) {
	buf := testChunkBytes(42, "RuSt", []byte(testMessage), 2882656333)

	_, err := Unmarshal(buf)
	var cerr *CRCMismatchError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, uint32(2882656333), cerr.Expected)
	require.Equal(t, uint32(2882656334), cerr.Calculated)
}

func TestUnmarshalTamperedCRC(t *testing.T) {
	for bit := 0; bit < 32; bit++ {
		buf := append([]byte(nil), chunkEnc...)
		buf[len(buf)-4+bit/8] ^= 1 << (bit % 8)

		_, err := Unmarshal(buf)
		var cerr *CRCMismatchError
		require.ErrorAs(t, err, &cerr, "bit %d", bit)
	}
}

func TestUnmarshalTamperedData(t *testing.T) {
	buf := append([]byte(nil), chunkEnc...)
	buf[HeaderSize+3] ^= 0x01

	_, err := Unmarshal(buf)
	var cerr *CRCMismatchError
	require.ErrorAs(t, err, &cerr)
}

func TestUnmarshalErrors(t *testing.T) {
	for _, ca := range []struct {
		name string
		buf  []byte
		err  error
	}{
		{
			"empty",
			[]byte{},
			ErrBufferTooShort,
		},
		{
			"short length",
			[]byte{0x00, 0x00, 0x2a},
			ErrBufferTooShort,
		},
		{
			"length too large",
			[]byte{0x80, 0x00, 0x00, 0x00, 'R', 'u', 'S', 't'},
			&LengthTooLargeError{Length: 0x80000000},
		},
		{
			"length too large without type",
			[]byte{0xff, 0xff, 0xff, 0xff},
			&LengthTooLargeError{Length: 0xffffffff},
		},
		{
			"short type",
			[]byte{0x00, 0x00, 0x00, 0x00, 'R', 'u'},
			ErrBufferTooShort,
		},
		{
			"max length, missing data",
			[]byte{0x7f, 0xff, 0xff, 0xff, 'R', 'u', 'S', 't'},
			&IncorrectLengthError{Length: MaxLength},
		},
		{
			"incorrect length",
			testChunkBytes(42, "RuSt", []byte("short"), 0)[:8+5],
			&IncorrectLengthError{Length: 42},
		},
		{
			"missing crc",
			chunkEnc[:len(chunkEnc)-4],
			&CRCFieldSizeError{Size: 0},
		},
		{
			"truncated crc",
			chunkEnc[:len(chunkEnc)-1],
			&CRCFieldSizeError{Size: 3},
		},
		{
			"trailing bytes",
			append(append([]byte(nil), chunkEnc...), 0x00),
			&CRCFieldSizeError{Size: 5},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			_, err := Unmarshal(ca.buf)
			require.Equal(t, ca.err, err)
		})
	}
}

func TestUnmarshalTruncatedCRCIsBufferTooShort(t *testing.T) {
	_, err := Unmarshal(chunkEnc[:len(chunkEnc)-2])
	require.ErrorIs(t, err, ErrBufferTooShort)

	_, err = Unmarshal(append(append([]byte(nil), chunkEnc...), 0x00))
	require.False(t, errors.Is(err, ErrBufferTooShort))
}

func TestDataAsStringInvalid(t *testing.T) {
	c := New(TypeFromBytes([4]byte{'R', 'u', 'S', 't'}), []byte{0xff, 0xfe})
	_, err := c.DataAsString()
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.Equal(t, []byte{0xff, 0xfe}, c.Data())
}

func TestString(t *testing.T) {
	c, err := Unmarshal(chunkEnc)
	require.NoError(t, err)
	require.Equal(t, "Chunk length: 42\nChunk type: RuSt\nCRC: 2882656334\n", c.String())
}

// New does not check data against MaxLength, while Unmarshal does.
// This needs more than 2GiB of memory, therefore it's opt-in.
func TestNewAboveMaxLength(t *testing.T) {
	if os.Getenv("PNGME_TEST_LARGE") == "" {
		t.Skip("set PNGME_TEST_LARGE to run")
	}

	size := uint64(MaxLength) + 1
	c := New(TypeFromBytes([4]byte{'R', 'u', 'S', 't'}), make([]byte, size))
	require.Equal(t, uint32(MaxLength+1), c.Length())

	_, err := Unmarshal(c.Marshal())
	require.Equal(t, &LengthTooLargeError{Length: MaxLength + 1}, err)
}
