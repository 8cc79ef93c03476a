package ledger

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// Account holds the balance of a single asset together with the identity
// that controls it.
type Account struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Ticker names the asset kept in this account.
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Authority is the only identity allowed to move funds out of the
	// account or to hand its control to someone else.
	Authority weave.Address `protobuf:"bytes,3,opt,name=authority,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"authority,omitempty"`
	Amount    uint64        `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

func (m *Account) Marshal() ([]byte, error) { return proto.Marshal((*accountCodec)(m)) }
func (m *Account) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*accountCodec)(m)) }

// Configuration is the ledger configuration kept in the gconf store.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner may update this configuration.
	Owner weave.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"owner,omitempty"`
	// NativeTicker is the asset used to pay storage deposits.
	NativeTicker string `protobuf:"bytes,3,opt,name=native_ticker,json=nativeTicker,proto3" json:"native_ticker,omitempty"`
	// RentPerByteYear is the storage price of a single byte for a year.
	RentPerByteYear uint64 `protobuf:"varint,4,opt,name=rent_per_byte_year,json=rentPerByteYear,proto3" json:"rent_per_byte_year,omitempty"`
	// ExemptionYears is how many years of rent a deposit must cover for
	// the storage to be exempt from rent collection.
	ExemptionYears uint64 `protobuf:"varint,5,opt,name=exemption_years,json=exemptionYears,proto3" json:"exemption_years,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationCodec)(m)) }
func (m *Configuration) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*configurationCodec)(m))
}

// CreateAccountMsg creates an empty account at the given address.
type CreateAccountMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address   weave.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"address,omitempty"`
	Ticker    string          `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Authority weave.Address   `protobuf:"bytes,4,opt,name=authority,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"authority,omitempty"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAccountMsgCodec)(m))
}
func (m *CreateAccountMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*createAccountMsgCodec)(m))
}

// TransferMsg moves funds between two accounts of the same asset.
type TransferMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      weave.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"source,omitempty"`
	Destination weave.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error) { return proto.Marshal((*transferMsgCodec)(m)) }
func (m *TransferMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*transferMsgCodec)(m)) }

// SetAuthorityMsg hands the control of an account to a new authority.
type SetAuthorityMsg struct {
	Metadata     *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Account      weave.Address   `protobuf:"bytes,2,opt,name=account,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"account,omitempty"`
	NewAuthority weave.Address   `protobuf:"bytes,3,opt,name=new_authority,json=newAuthority,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"new_authority,omitempty"`
}

func (m *SetAuthorityMsg) Reset()         { *m = SetAuthorityMsg{} }
func (m *SetAuthorityMsg) String() string { return proto.CompactTextString(m) }
func (*SetAuthorityMsg) ProtoMessage()    {}

func (m *SetAuthorityMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*setAuthorityMsgCodec)(m))
}
func (m *SetAuthorityMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*setAuthorityMsgCodec)(m))
}

// UpdateConfigurationMsg patches the ledger configuration. Only non zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgCodec)(m))
}
func (m *UpdateConfigurationMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*updateConfigurationMsgCodec)(m))
}

// Codec types share the layout of the public types but have no Marshal
// method, so that proto.Marshal uses the reflection based codec.

type accountCodec Account

func (m *accountCodec) Reset()         { *m = accountCodec{} }
func (m *accountCodec) String() string { return proto.CompactTextString(m) }
func (*accountCodec) ProtoMessage()    {}

type configurationCodec Configuration

func (m *configurationCodec) Reset()         { *m = configurationCodec{} }
func (m *configurationCodec) String() string { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()    {}

type createAccountMsgCodec CreateAccountMsg

func (m *createAccountMsgCodec) Reset()         { *m = createAccountMsgCodec{} }
func (m *createAccountMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createAccountMsgCodec) ProtoMessage()    {}

type transferMsgCodec TransferMsg

func (m *transferMsgCodec) Reset()         { *m = transferMsgCodec{} }
func (m *transferMsgCodec) String() string { return proto.CompactTextString(m) }
func (*transferMsgCodec) ProtoMessage()    {}

type setAuthorityMsgCodec SetAuthorityMsg

func (m *setAuthorityMsgCodec) Reset()         { *m = setAuthorityMsgCodec{} }
func (m *setAuthorityMsgCodec) String() string { return proto.CompactTextString(m) }
func (*setAuthorityMsgCodec) ProtoMessage()    {}

type updateConfigurationMsgCodec UpdateConfigurationMsg

func (m *updateConfigurationMsgCodec) Reset()         { *m = updateConfigurationMsgCodec{} }
func (m *updateConfigurationMsgCodec) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgCodec) ProtoMessage()    {}
