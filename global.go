package x12doc

const (
	isaSegmentId = "ISA"
	ieaSegmentId = "IEA"
	gsSegmentId  = "GS"
	geSegmentId  = "GE"
	stSegmentId  = "ST"
	seSegmentId  = "SE"

	isaElementCount          = 17
	isaElementSeparatorIndex = 3
)

const (
	isaIndexSegmentId = iota
	isaIndexAuthInfoQualifier
	isaIndexAuthInfo
	isaIndexSecurityInfoQualifier
	isaIndexSecurityInfo
	isaIndexSenderIdQualifier
	isaIndexSenderId
	isaIndexReceiverIdQualifier
	isaIndexReceiverId
	isaIndexDate
	isaIndexTime
	isaIndexRepetitionSeparator
	isaIndexVersion
	isaIndexControlNumber
	isaIndexAckRequested
	isaIndexUsageIndicator
	isaIndexComponentElementSeparator
)

const (
	ieaIndexFunctionalGroupCount = iota + 1
	ieaIndexControlNumber
)

const (
	gsIndexFunctionalIdentifierCode = iota + 1
	gsIndexSenderCode
	gsIndexReceiverCode
	gsIndexDate
	gsIndexTime
	gsIndexControlNumber
	gsIndexResponsibleAgencyCode
	gsIndexVersion
)

const (
	geIndexNumberOfIncludedTransactionSets = iota + 1
	geIndexControlNumber
)

const (
	stIndexTransactionSetCode = iota + 1
	stIndexControlNumber
	stIndexVersionCode
)

const (
	seIndexNumberOfIncludedSegments = iota + 1
	seIndexControlNumber
)

// isaLen* consts indicate the length of elements in the ISA
// header (no more, no less, whitespace padded on the left)
const (
	isaLenAuthInfoQualifier     = 2
	isaLenAuthInfo              = 10
	isaLenSecurityInfoQualifier = 2
	isaLenSecurityInfo          = 10
	isaLenSenderIdQualifier     = 2
	isaLenSenderId              = 15
	isaLenReceiverIdQualifier   = 2
	isaLenReceiverId            = 15
	isaLenDate                  = 6
	isaLenTime                  = 4
	isaLenRepetitionSeparator   = 1
	isaLenVersion               = 5
	isaLenControlNumber         = 9
	isaLenAckRequested          = 1
	isaLenUsageIndicator        = 1
	isaLenComponentSeparator    = 1
)
