package cli

import (
	"os"
	"path/filepath"
	"strings"
)

func (s *testSuite) TestWriteJSON() {
	err := s.ctl.WriteJSON(map[string]interface{}{
		"algorithm": "AES-256-GCM",
		"pqc":       false,
	})
	s.Require().NoError(err)
	s.HasText(`"algorithm": "AES-256-GCM"`, `"pqc": false`)
	s.True(strings.HasSuffix(s.Out.String(), "\n"))

	// channels have no JSON encoding
	err = s.ctl.WriteJSON(make(chan int))
	s.Require().Error(err)
}

func (s *testSuite) TestKeyList() {
	cmd := KeyListCmd{}
	err := cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("AES-256-GCM", "X25519MLKEM768", "ML-DSA-65")
}

func (s *testSuite) TestKeyListFiltered() {
	cmd := KeyListCmd{Category: "kem"}
	err := cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("ML-KEM-768")
	s.NotContains(s.Out.String(), "ED25519")
}

func (s *testSuite) TestRand() {
	cmd := RandCmd{Size: 16}
	err := cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.NotEmpty(s.Out.String())
}

func (s *testSuite) TestKeyGenSymmetric() {
	cmd := KeyGenCmd{Alg: "AES-256-GCM"}
	err := cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.NotEmpty(s.Out.String())
}

func (s *testSuite) TestKeyGenUnknown() {
	cmd := KeyGenCmd{Alg: "AES-512"}
	err := cmd.Run(s.ctl)
	s.Require().Error(err)
}

func (s *testSuite) TestEncryptDecrypt() {
	dir := s.T().TempDir()

	keyGen := KeyGenCmd{Alg: "AES-256-GCM", Out: filepath.Join(dir, "aes")}
	s.Require().NoError(keyGen.Run(s.ctl))
	keyFile := filepath.Join(dir, "aes.key")

	inFile := filepath.Join(dir, "plain.txt")
	s.Require().NoError(os.WriteFile(inFile, []byte("This is Plain!"), 0600))
	ctFile := filepath.Join(dir, "cipher.b64")

	enc := EncryptCmd{Key: keyFile, In: inFile, Out: ctFile, Aad: "ctx"}
	s.Require().NoError(enc.Run(s.ctl))

	outFile := filepath.Join(dir, "plain.out")
	dec := DecryptCmd{Key: keyFile, In: ctFile, Out: outFile, Aad: "ctx"}
	s.Require().NoError(dec.Run(s.ctl))

	out, err := os.ReadFile(outFile)
	s.Require().NoError(err)
	s.Equal("This is Plain!", string(out))

	// wrong AAD fails authentication
	bad := DecryptCmd{Key: keyFile, In: ctFile, Out: outFile, Aad: "other"}
	s.Require().Error(bad.Run(s.ctl))
}

func (s *testSuite) TestKemEncapDecap() {
	dir := s.T().TempDir()

	keyGen := KeyGenCmd{Alg: "X25519MLKEM768", Out: filepath.Join(dir, "kem")}
	s.Require().NoError(keyGen.Run(s.ctl))

	ctFile := filepath.Join(dir, "ct.b64")
	ssFile := filepath.Join(dir, "ss.b64")
	encap := EncapCmd{Pub: filepath.Join(dir, "kem.pub"), CtOut: ctFile, SecretOut: ssFile}
	s.Require().NoError(encap.Run(s.ctl))

	ssFile2 := filepath.Join(dir, "ss2.b64")
	decap := DecapCmd{Key: filepath.Join(dir, "kem.key"), Ct: ctFile, SecretOut: ssFile2}
	s.Require().NoError(decap.Run(s.ctl))

	ss1, err := os.ReadFile(ssFile)
	s.Require().NoError(err)
	ss2, err := os.ReadFile(ssFile2)
	s.Require().NoError(err)
	s.Equal(ss1, ss2)
}

func (s *testSuite) TestSignVerify() {
	dir := s.T().TempDir()

	keyGen := KeyGenCmd{Alg: "ML-DSA-65", Out: filepath.Join(dir, "sig")}
	s.Require().NoError(keyGen.Run(s.ctl))

	inFile := filepath.Join(dir, "msg.txt")
	s.Require().NoError(os.WriteFile(inFile, []byte("signed payload"), 0600))
	sigFile := filepath.Join(dir, "msg.sig")

	sign := SignDataCmd{Key: filepath.Join(dir, "sig.key"), In: inFile, Out: sigFile}
	s.Require().NoError(sign.Run(s.ctl))

	verify := VerifyCmd{Pub: filepath.Join(dir, "sig.pub"), Sig: sigFile, In: inFile}
	s.Require().NoError(verify.Run(s.ctl))
	s.HasText("valid", "true")
}

func (s *testSuite) TestTotpEnroll() {
	cmd := TotpEnrollCmd{Issuer: "acme", Account: "alice"}
	s.Require().NoError(cmd.Run(s.ctl))
	s.HasText("otpauth://totp/acme:alice")
}
