package algid

// ParamSizes carries the byte sizes of an algorithm's parameters. Only the
// fields relevant to the algorithm's category are set.
type ParamSizes struct {
	// Symmetric
	KeySize int
	IVSize  int

	// Asymmetric
	PublicKeySize  int
	PrivateKeySize int

	// Signature
	SignatureSize int

	// KEM
	CiphertextSize   int
	SharedSecretSize int
}

func symmetric(key, iv int) ParamSizes {
	return ParamSizes{KeySize: key, IVSize: iv}
}

func kem(pk, sk, ct, ss int) ParamSizes {
	return ParamSizes{PublicKeySize: pk, PrivateKeySize: sk, CiphertextSize: ct, SharedSecretSize: ss}
}

func sig(pk, sk, sg int) ParamSizes {
	return ParamSizes{PublicKeySize: pk, PrivateKeySize: sk, SignatureSize: sg}
}

type info struct {
	category Category
	family   Family
	pqc      bool
	params   ParamSizes
}

var infos = map[ID]info{
	AES128:    {CategoryCipher, FamilyAES, false, symmetric(16, 16)},
	AES192:    {CategoryCipher, FamilyAES, false, symmetric(24, 16)},
	AES256:    {CategoryCipher, FamilyAES, false, symmetric(32, 16)},
	AES128CTR: {CategoryCipher, FamilyAES, false, symmetric(16, 16)},
	AES192CTR: {CategoryCipher, FamilyAES, false, symmetric(24, 16)},
	AES256CTR: {CategoryCipher, FamilyAES, false, symmetric(32, 16)},
	AES128GCM: {CategoryAEAD, FamilyAES, false, symmetric(16, 12)},
	AES192GCM: {CategoryAEAD, FamilyAES, false, symmetric(24, 12)},
	AES256GCM: {CategoryAEAD, FamilyAES, false, symmetric(32, 12)},

	ChaCha20:         {CategoryCipher, FamilyChaCha, false, symmetric(32, 12)},
	ChaCha20Poly1305: {CategoryAEAD, FamilyChaCha, false, symmetric(32, 12)},

	MLKEM512:  {CategoryKEM, FamilyMLKEM, true, kem(800, 1632, 768, 32)},
	MLKEM768:  {CategoryKEM, FamilyMLKEM, true, kem(1184, 2400, 1088, 32)},
	MLKEM1024: {CategoryKEM, FamilyMLKEM, true, kem(1568, 3168, 1568, 32)},
	X25519:    {CategoryKEM, FamilyCurve, false, kem(32, 32, 32, 32)},

	// Hybrid sizes are the component sums, X25519 first.
	X25519MLKEM768: {CategoryKEM, FamilyHybrid, true, kem(32+1184, 32+2400, 32+1088, 32+32)},

	Ed25519:        {CategorySignature, FamilyEdDSA, false, sig(32, 64, 64)},
	MLDSA44:        {CategorySignature, FamilyMLDSA, true, sig(1312, 2560, 2420)},
	MLDSA65:        {CategorySignature, FamilyMLDSA, true, sig(1952, 4032, 3309)},
	MLDSA87:        {CategorySignature, FamilyMLDSA, true, sig(2592, 4896, 4627)},
	SLHDSA128Small: {CategorySignature, FamilySLHDSA, true, sig(32, 64, 7856)},
}

var order = []ID{
	AES128, AES192, AES256,
	AES128CTR, AES192CTR, AES256CTR,
	AES128GCM, AES192GCM, AES256GCM,
	ChaCha20, ChaCha20Poly1305,
	MLKEM512, MLKEM768, MLKEM1024,
	X25519, X25519MLKEM768,
	Ed25519, MLDSA44, MLDSA65, MLDSA87, SLHDSA128Small,
}
