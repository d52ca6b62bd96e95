package msgs

const (
	MsgOperationSuccessful = "operation successful"
	MsgOperationFailed     = "operation failed"
	MsgYouMustLoginFirst   = "you must login first"

	// MsgMessageDeleted is the fixed marker shown in place of redacted content.
	MsgMessageDeleted = "This message was deleted"
)
