package apperrors

var (
	ErrConversationNotFound = NotFound("conversation not found")
	ErrReportNotFound       = NotFound("report not found")
	ErrReceiverNotFound     = NotFound("report receiver not found")

	ErrDirectPairExists  = Conflict("direct conversation already exists for this pair")
	ErrDuplicateReceiver = Conflict("receiver already exists for this report")

	ErrEmptyReceiverList    = Validation("EMPTY_RECEIVER_LIST: at least one receiver is required")
	ErrSelfConversation     = Validation("a direct conversation needs two distinct members")
	ErrDirectMembership     = Validation("direct conversation membership cannot change")
	ErrGroupTooSmall        = Validation("a group conversation needs at least two distinct members")
	ErrEmptyMemberList      = Validation("no members to add")
	ErrInvalidPage          = Validation("page must be >= 0 and page_size must be > 0")
	ErrEmptyMessage         = Validation("message needs content or attachments")
	ErrMissingConversation  = Validation("conversation id is required")
	ErrMissingParticipantID = Validation("user id is required")
)
