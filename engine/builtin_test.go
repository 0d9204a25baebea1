package engine

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	names := r.Names()

	if len(names) == 0 {
		t.Fatal("default registry is empty")
	}
	if names[len(names)-1] != FastHashName {
		t.Errorf("last algorithm = %q, want %q", names[len(names)-1], FastHashName)
	}

	for _, want := range []string{"MD5", "SHA1", "SHA256", "SHA512", "BLAKE3", "XXH3", "CRC32C"} {
		if _, ok := r.Lookup(want); !ok {
			t.Errorf("default registry is missing %s", want)
		}
	}

	all, err := r.Algorithms(SelectAll)
	require.NoError(t, err)
	require.Len(t, all, len(names))
}

func TestDefaultEnginesProduceDigests(t *testing.T) {
	all, err := Default().Algorithms(SelectAll)
	require.NoError(t, err)

	for _, d := range all {
		t.Run(d.Name, func(t *testing.T) {
			e := d.New()
			e.Update([]byte("hashbench"))

			if len(e.Finalize()) == 0 {
				t.Errorf("%s produced an empty digest", d.Name)
			}
		})
	}
}

func TestSHA256SIMDMatchesStdlib(t *testing.T) {
	d, ok := Default().Lookup("sha256-simd")
	require.True(t, ok)

	data := []byte("the quick brown fox jumps over the lazy dog")

	e := d.New()
	e.Update(data)

	want := sha256.Sum256(data)
	require.Equal(t, want[:], e.Finalize())
}
