package crypto

import "github.com/gogo/protobuf/proto"

// PublicKey is the serializable form of a public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) { return proto.Marshal((*publicKeyCodec)(m)) }
func (m *PublicKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*publicKeyCodec)(m)) }

// PrivateKey is the serializable form of a private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return proto.CompactTextString(m) }
func (*PrivateKey) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) { return proto.Marshal((*privateKeyCodec)(m)) }
func (m *PrivateKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*privateKeyCodec)(m)) }

// Signature is the serializable form of a signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) { return proto.Marshal((*signatureCodec)(m)) }
func (m *Signature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*signatureCodec)(m)) }

// Codec types share the layout of the public types but carry no Marshal
// method, so that proto.Marshal falls back to the reflection based codec
// instead of calling back into the public type.

type publicKeyCodec PublicKey

func (m *publicKeyCodec) Reset()         { *m = publicKeyCodec{} }
func (m *publicKeyCodec) String() string { return proto.CompactTextString(m) }
func (*publicKeyCodec) ProtoMessage()    {}

type privateKeyCodec PrivateKey

func (m *privateKeyCodec) Reset()         { *m = privateKeyCodec{} }
func (m *privateKeyCodec) String() string { return proto.CompactTextString(m) }
func (*privateKeyCodec) ProtoMessage()    {}

type signatureCodec Signature

func (m *signatureCodec) Reset()         { *m = signatureCodec{} }
func (m *signatureCodec) String() string { return proto.CompactTextString(m) }
func (*signatureCodec) ProtoMessage()    {}
