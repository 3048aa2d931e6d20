package visca

// ReplyKind classifies one received reply.
type ReplyKind int

const (
	// ReplyAck is any reply that matches neither the error nor the
	// inquiry-data shape. Action commands complete with an ack.
	ReplyAck ReplyKind = iota
	// ReplyError is an error reply 90 6X <code> FF.
	ReplyError
	// ReplyInquiry is a data-bearing reply 90 50 <data...> FF to an inquiry.
	ReplyInquiry
	// ReplyEmpty means no bytes arrived before the timeout elapsed.
	ReplyEmpty
)

// Reply is the classified result of one receive.
type Reply struct {
	Kind    ReplyKind
	Raw     []byte // full reply bytes as received
	Status  byte   // error status code, set for ReplyError
	Payload []byte // inquiry data with header and terminator stripped, set for ReplyInquiry
}

// ClassifyReply inspects one raw reply. inquiry says whether the command
// that produced it was an inquiry; only then is the data shape considered.
func ClassifyReply(raw []byte, inquiry bool) Reply {
	if len(raw) == 0 {
		return Reply{Kind: ReplyEmpty}
	}
	if len(raw) >= 3 && raw[1]&0xF0 == replyErrorNibble {
		return Reply{Kind: ReplyError, Raw: raw, Status: raw[2]}
	}
	if inquiry && len(raw) > 3 {
		return Reply{Kind: ReplyInquiry, Raw: raw, Payload: raw[2 : len(raw)-1]}
	}
	return Reply{Kind: ReplyAck, Raw: raw}
}
