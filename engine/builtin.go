package engine

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"hash/crc64"
	"hash/fnv"

	"blainsmith.com/go/seahash"
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/minio/highwayhash"
	sha256simd "github.com/minio/sha256-simd"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	_ "golang.org/x/crypto/blake2b"
	_ "golang.org/x/crypto/blake2s"
	_ "golang.org/x/crypto/md4"
	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"
)

// FastHashName is the name of the fast non-cryptographic baseline.
const FastHashName = "SeaHash"

// Keyed hashes are benchmarked with fixed keys; only throughput matters.
var (
	highwayKey = []byte("hashbench-highwayhash-key-32byte")
	sipKey     = []byte("hashbench-sipkey")
)

// cryptoHashes lists the crypto.Hash registry in crypto.Hash order.
// Entries whose implementation is not linked in are skipped.
var cryptoHashes = []struct {
	name string
	hash crypto.Hash
}{
	{"MD4", crypto.MD4},
	{"MD5", crypto.MD5},
	{"SHA1", crypto.SHA1},
	{"SHA224", crypto.SHA224},
	{"SHA256", crypto.SHA256},
	{"SHA384", crypto.SHA384},
	{"SHA512", crypto.SHA512},
	{"RIPEMD160", crypto.RIPEMD160},
	{"SHA3_224", crypto.SHA3_224},
	{"SHA3_256", crypto.SHA3_256},
	{"SHA3_384", crypto.SHA3_384},
	{"SHA3_512", crypto.SHA3_512},
	{"SHA512_224", crypto.SHA512_224},
	{"SHA512_256", crypto.SHA512_256},
	{"BLAKE2s_256", crypto.BLAKE2s_256},
	{"BLAKE2b_256", crypto.BLAKE2b_256},
	{"BLAKE2b_384", crypto.BLAKE2b_384},
	{"BLAKE2b_512", crypto.BLAKE2b_512},
}

// Default returns a Registry holding every built-in engine: the available
// crypto.Hash digests, then the third-party and checksum engines, with
// SeaHash as the fast hash.
func Default() *Registry {
	r := NewRegistry()

	for _, c := range cryptoHashes {
		if !c.hash.Available() {
			continue
		}

		mustRegister(r, c.name, FromHash(c.hash.New))
	}

	mustRegister(r, "SHA256_SIMD", FromHash(sha256simd.New))
	mustRegister(r, "BLAKE3", FromHash(blake3.New))
	mustRegister(r, "XXH64", FromHash(xxhash.New))
	mustRegister(r, "XXH3", FromHash(xxh3.New))
	mustRegister(r, "Murmur3_128", FromHash(murmur3.New128))
	mustRegister(r, "HighwayHash256", FromHash(newHighwayHash))
	mustRegister(r, "SipHash_2_4", FromHash(newSipHash))
	mustRegister(r, "CRC32C", FromHash(newCRC32C))
	mustRegister(r, "CRC64_ISO", FromHash(newCRC64ISO))
	mustRegister(r, "Adler32", FromHash(adler32.New))
	mustRegister(r, "FNV1a_64", FromHash(fnv.New64a))

	if err := r.SetFastHash(FastHashName, FromHash(seahash.New)); err != nil {
		panic(err)
	}

	return r
}

func mustRegister(r *Registry, name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

func newHighwayHash() hash.Hash {
	h, err := highwayhash.New(highwayKey)
	if err != nil {
		panic(err)
	}

	return h
}

func newSipHash() hash.Hash64 {
	return siphash.New(sipKey)
}

var (
	crc32cTable = crc32.MakeTable(crc32.Castagnoli)
	crc64Table  = crc64.MakeTable(crc64.ISO)
)

func newCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

func newCRC64ISO() hash.Hash64 {
	return crc64.New(crc64Table)
}
