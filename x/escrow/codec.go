package escrow

import (
	"strconv"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// State is the lifecycle tag of an escrow.
type State int32

const (
	StateInvalid State = 0
	// StateOpen is the state of an escrow waiting for a taker.
	StateOpen State = 1
	// StateSettled is the terminal state of an exchanged escrow.
	StateSettled State = 2
)

var stateNames = map[State]string{
	StateInvalid: "INVALID",
	StateOpen:    "OPEN",
	StateSettled: "SETTLED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Escrow is the record of a single trade. It is stored under the address of
// the record slot chosen by the initializer.
type Escrow struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Initializer is the party that deposited the asset.
	Initializer weave.Address `protobuf:"bytes,2,opt,name=initializer,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"initializer,omitempty"`
	// HoldingAccount keeps the deposited asset under the escrow authority.
	HoldingAccount weave.Address `protobuf:"bytes,3,opt,name=holding_account,json=holdingAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"holding_account,omitempty"`
	// PayoutAccount receives the counter asset.
	PayoutAccount weave.Address `protobuf:"bytes,4,opt,name=payout_account,json=payoutAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"payout_account,omitempty"`
	// ExpectedAmount of the counter asset the initializer wants.
	ExpectedAmount uint64 `protobuf:"varint,5,opt,name=expected_amount,json=expectedAmount,proto3" json:"expected_amount,omitempty"`
	State          State  `protobuf:"varint,6,opt,name=state,proto3" json:"state,omitempty"`
	// Deposit locked in the record slot to pay for the record storage.
	Deposit uint64 `protobuf:"varint,7,opt,name=deposit,proto3" json:"deposit,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

func (m *Escrow) Marshal() ([]byte, error) { return proto.Marshal((*escrowCodec)(m)) }
func (m *Escrow) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*escrowCodec)(m)) }

// InitEscrowMsg opens a new escrow.
type InitEscrowMsg struct {
	Metadata       *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Initializer    weave.Address   `protobuf:"bytes,2,opt,name=initializer,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"initializer,omitempty"`
	HoldingAccount weave.Address   `protobuf:"bytes,3,opt,name=holding_account,json=holdingAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"holding_account,omitempty"`
	PayoutAccount  weave.Address   `protobuf:"bytes,4,opt,name=payout_account,json=payoutAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"payout_account,omitempty"`
	// EscrowRecord is the fresh address the record is stored under.
	EscrowRecord weave.Address `protobuf:"bytes,5,opt,name=escrow_record,json=escrowRecord,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"escrow_record,omitempty"`
	// Deposit of the native asset funding the record storage.
	Deposit        uint64 `protobuf:"varint,6,opt,name=deposit,proto3" json:"deposit,omitempty"`
	ExpectedAmount uint64 `protobuf:"varint,7,opt,name=expected_amount,json=expectedAmount,proto3" json:"expected_amount,omitempty"`
}

func (m *InitEscrowMsg) Reset()         { *m = InitEscrowMsg{} }
func (m *InitEscrowMsg) String() string { return proto.CompactTextString(m) }
func (*InitEscrowMsg) ProtoMessage()    {}

func (m *InitEscrowMsg) Marshal() ([]byte, error) { return proto.Marshal((*initEscrowMsgCodec)(m)) }
func (m *InitEscrowMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*initEscrowMsgCodec)(m))
}

// ExchangeMsg completes an open escrow.
type ExchangeMsg struct {
	Metadata         *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Taker            weave.Address   `protobuf:"bytes,2,opt,name=taker,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"taker,omitempty"`
	TakerSource      weave.Address   `protobuf:"bytes,3,opt,name=taker_source,json=takerSource,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"taker_source,omitempty"`
	TakerDestination weave.Address   `protobuf:"bytes,4,opt,name=taker_destination,json=takerDestination,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"taker_destination,omitempty"`
	HoldingAccount   weave.Address   `protobuf:"bytes,5,opt,name=holding_account,json=holdingAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"holding_account,omitempty"`
	Initializer      weave.Address   `protobuf:"bytes,6,opt,name=initializer,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"initializer,omitempty"`
	PayoutAccount    weave.Address   `protobuf:"bytes,7,opt,name=payout_account,json=payoutAccount,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"payout_account,omitempty"`
	EscrowRecord     weave.Address   `protobuf:"bytes,8,opt,name=escrow_record,json=escrowRecord,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"escrow_record,omitempty"`
	// Authority is the derived address controlling the holding account.
	Authority weave.Address `protobuf:"bytes,9,opt,name=authority,proto3,casttype=github.com/iov-one/weave-escrow.Address" json:"authority,omitempty"`
	// CounterAmount is informative only.
	CounterAmount uint64 `protobuf:"varint,10,opt,name=counter_amount,json=counterAmount,proto3" json:"counter_amount,omitempty"`
}

func (m *ExchangeMsg) Reset()         { *m = ExchangeMsg{} }
func (m *ExchangeMsg) String() string { return proto.CompactTextString(m) }
func (*ExchangeMsg) ProtoMessage()    {}

func (m *ExchangeMsg) Marshal() ([]byte, error) { return proto.Marshal((*exchangeMsgCodec)(m)) }
func (m *ExchangeMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*exchangeMsgCodec)(m)) }

type escrowCodec Escrow

func (m *escrowCodec) Reset()         { *m = escrowCodec{} }
func (m *escrowCodec) String() string { return proto.CompactTextString(m) }
func (*escrowCodec) ProtoMessage()    {}

type initEscrowMsgCodec InitEscrowMsg

func (m *initEscrowMsgCodec) Reset()         { *m = initEscrowMsgCodec{} }
func (m *initEscrowMsgCodec) String() string { return proto.CompactTextString(m) }
func (*initEscrowMsgCodec) ProtoMessage()    {}

type exchangeMsgCodec ExchangeMsg

func (m *exchangeMsgCodec) Reset()         { *m = exchangeMsgCodec{} }
func (m *exchangeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*exchangeMsgCodec) ProtoMessage()    {}
