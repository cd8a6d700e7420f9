package main

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/ecc"
	"github.com/ProtonMail/go-crypto/openpgp/eddsa"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// minedKey is a candidate Ed25519 OpenPGP key. The hot loop only materializes
// the public half (enough for the fingerprint); the full self-signed entity
// is built lazily when a match is exported.
type minedKey struct {
	uid         string
	createdAt   time.Time
	seed        [32]byte
	fingerprint string
}

// synthesize is swappable in tests; production always uses synthesizeKey.
var synthesize = synthesizeKey

// synthesizeKey deterministically derives the Ed25519 key for (uid,
// createdAt) and its v4 fingerprint. Identical inputs always yield an
// identical fingerprint; entropy, when configured, is folded into the seed so
// keys are not derivable from public parameters alone. The error return
// exists for the worker's fatal-error path; this parameterization does not
// fail in normal operation.
func synthesizeKey(entropy, uid string, createdAt time.Time) (*minedKey, error) {
	createdAt = createdAt.UTC().Truncate(time.Second)
	seed := deriveSeed(entropy, uid, createdAt)

	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := eddsa.NewPublicKey(ecc.NewEd25519())
	pub.X = priv.Public().(ed25519.PublicKey)
	pkt := packet.NewEdDSAPublicKey(createdAt, pub)

	return &minedKey{
		uid:         uid,
		createdAt:   createdAt,
		seed:        seed,
		fingerprint: strings.ToUpper(hex.EncodeToString(pkt.Fingerprint)),
	}, nil
}

// deriveSeed hashes entropy, uid and the creation instant into the Ed25519
// seed. NUL separators keep (entropy, uid) boundaries unambiguous.
func deriveSeed(entropy, uid string, createdAt time.Time) [32]byte {
	buf := make([]byte, 0, len(entropy)+len(uid)+10)
	buf = append(buf, entropy...)
	buf = append(buf, 0)
	buf = append(buf, uid...)
	buf = append(buf, 0)
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(createdAt.Unix()))
	buf = append(buf, ts[:]...)
	return seedSum(buf)
}

// entity rebuilds the full private entity with a positive self-certification
// carrying the certify and sign flags.
func (k *minedKey) entity() (*openpgp.Entity, error) {
	pub := eddsa.NewPublicKey(ecc.NewEd25519())
	edPriv := ed25519.NewKeyFromSeed(k.seed[:])
	pub.X = edPriv.Public().(ed25519.PublicKey)

	priv := eddsa.NewPrivateKey(*pub)
	priv.D = k.seed[:]
	pk := packet.NewSignerPrivateKey(k.createdAt, priv)

	e := &openpgp.Entity{
		PrimaryKey: &pk.PublicKey,
		PrivateKey: pk,
		Identities: make(map[string]*openpgp.Identity),
	}

	uid := packet.NewUserId(k.uid, "", "")
	isPrimary := true
	selfSig := &packet.Signature{
		Version:           pk.PublicKey.Version,
		SigType:           packet.SigTypePositiveCert,
		PubKeyAlgo:        pk.PublicKey.PubKeyAlgo,
		Hash:              crypto.SHA256,
		CreationTime:      k.createdAt,
		IssuerKeyId:       &pk.PublicKey.KeyId,
		IssuerFingerprint: pk.PublicKey.Fingerprint,
		IsPrimaryId:       &isPrimary,
		FlagsValid:        true,
		FlagCertify:       true,
		FlagSign:          true,
	}
	if err := selfSig.SignUserId(uid.Id, &pk.PublicKey, pk, nil); err != nil {
		return nil, err
	}
	e.Identities[uid.Id] = &openpgp.Identity{
		Name:          uid.Id,
		UserId:        uid,
		SelfSignature: selfSig,
		Signatures:    []*packet.Signature{selfSig},
	}
	return e, nil
}

// armoredExport renders the self-signed private key as an armored block,
// optionally protecting the key material with passphrase.
func (k *minedKey) armoredExport(passphrase string) (string, error) {
	e, err := k.entity()
	if err != nil {
		return "", err
	}
	if passphrase != "" {
		if err := e.PrivateKey.Encrypt([]byte(passphrase)); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		return "", err
	}
	if err := e.SerializePrivateWithoutSigning(w, nil); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
