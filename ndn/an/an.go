// Package an contains NDN assigned numbers used by this module.
package an

// TLV-TYPE assigned numbers for names.
const (
	TtInvalid = 0x00

	TtName                            = 0x07
	TtGenericNameComponent            = 0x08
	TtImplicitSha256DigestComponent   = 0x01
	TtParametersSha256DigestComponent = 0x02
	TtKeywordNameComponent            = 0x20
	TtSegmentNameComponent            = 0x32
	TtByteOffsetNameComponent         = 0x34
	TtVersionNameComponent            = 0x36
	TtTimestampNameComponent          = 0x38
	TtSequenceNumNameComponent        = 0x3A
)
