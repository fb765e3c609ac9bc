package crc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	for _, ca := range []struct {
		name  string
		parts [][]byte
		sum   uint32
	}{
		{
			"empty",
			nil,
			0,
		},
		{
			"check value",
			[][]byte{[]byte("123456789")},
			0xcbf43926,
		},
		{
			"iend",
			[][]byte{[]byte("IEND")},
			0xae426082,
		},
		{
			"split",
			[][]byte{[]byte("1234"), []byte("56789")},
			0xcbf43926,
		},
		{
			"chunk",
			[][]byte{[]byte("RuSt"), []byte("This is where your secret message will be!")},
			2882656334,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.sum, Checksum(ca.parts...))
			require.True(t, Verify(ca.sum, ca.parts...))
			require.False(t, Verify(ca.sum+1, ca.parts...))
		})
	}
}

func TestChecksumConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	sums := make([]uint32, 16)

	for i := range sums {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sums[i] = Checksum([]byte("IEND"))
		}(i)
	}
	wg.Wait()

	for _, s := range sums {
		require.Equal(t, uint32(0xae426082), s)
	}
}
