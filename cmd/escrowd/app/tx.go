package app

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/escrow"
	"github.com/iov-one/weave-escrow/x/ledger"
	"github.com/iov-one/weave-escrow/x/sigs"
)

// Tx is the envelope of every transaction processed by the application. It
// carries the signatures and exactly one message.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateAccountMsg      *ledger.CreateAccountMsg       `protobuf:"bytes,10,opt,name=create_account_msg,json=createAccountMsg,proto3" json:"create_account_msg,omitempty"`
	TransferMsg           *ledger.TransferMsg            `protobuf:"bytes,11,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	SetAuthorityMsg       *ledger.SetAuthorityMsg        `protobuf:"bytes,12,opt,name=set_authority_msg,json=setAuthorityMsg,proto3" json:"set_authority_msg,omitempty"`
	UpdateLedgerConfigMsg *ledger.UpdateConfigurationMsg `protobuf:"bytes,13,opt,name=update_ledger_config_msg,json=updateLedgerConfigMsg,proto3" json:"update_ledger_config_msg,omitempty"`
	InitEscrowMsg         *escrow.InitEscrowMsg          `protobuf:"bytes,20,opt,name=init_escrow_msg,json=initEscrowMsg,proto3" json:"init_escrow_msg,omitempty"`
	ExchangeMsg           *escrow.ExchangeMsg            `protobuf:"bytes,21,opt,name=exchange_msg,json=exchangeMsg,proto3" json:"exchange_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txCodec)(m)) }
func (m *Tx) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*txCodec)(m)) }

type txCodec Tx

func (m *txCodec) Reset()         { *m = txCodec{} }
func (m *txCodec) String() string { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()    {}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	var msgs []weave.Msg
	if tx.CreateAccountMsg != nil {
		msgs = append(msgs, tx.CreateAccountMsg)
	}
	if tx.TransferMsg != nil {
		msgs = append(msgs, tx.TransferMsg)
	}
	if tx.SetAuthorityMsg != nil {
		msgs = append(msgs, tx.SetAuthorityMsg)
	}
	if tx.UpdateLedgerConfigMsg != nil {
		msgs = append(msgs, tx.UpdateLedgerConfigMsg)
	}
	if tx.InitEscrowMsg != nil {
		msgs = append(msgs, tx.InitEscrowMsg)
	}
	if tx.ExchangeMsg != nil {
		msgs = append(msgs, tx.ExchangeMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in a single transaction", len(msgs))
	}
}

// SetMsg places the message in the matching field of the envelope.
func (tx *Tx) SetMsg(msg weave.Msg) error {
	switch m := msg.(type) {
	case *ledger.CreateAccountMsg:
		tx.CreateAccountMsg = m
	case *ledger.TransferMsg:
		tx.TransferMsg = m
	case *ledger.SetAuthorityMsg:
		tx.SetAuthorityMsg = m
	case *ledger.UpdateConfigurationMsg:
		tx.UpdateLedgerConfigMsg = m
	case *escrow.InitEscrowMsg:
		tx.InitEscrowMsg = m
	case *escrow.ExchangeMsg:
		tx.ExchangeMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}
