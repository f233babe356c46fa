package format

type (
	SectionType     uint8
	CompressionType uint8
)

// Container sections, in payload order.
const (
	SectionLiteralLengths  SectionType = 0x0 // SectionLiteralLengths holds +2 biased literal run lengths.
	SectionTokenLengths    SectionType = 0x1 // SectionTokenLengths holds +2 biased token run counts.
	SectionBytePairLengths SectionType = 0x2 // SectionBytePairLengths holds unbiased vocabulary entry lengths.
	SectionTokens          SectionType = 0x3 // SectionTokens holds +2 biased vocabulary entry indices.
	SectionLiterals        SectionType = 0x4 // SectionLiterals holds raw literal run bytes.
	SectionBytePairs       SectionType = 0x5 // SectionBytePairs holds raw vocabulary entry bytes.

	SectionCount = 6 // SectionCount is the number of sections in a container.
	BitSections  = 4 // BitSections is the number of universal-coded sections; they come first.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionSBPE CompressionType = 0x5 // CompressionSBPE represents the sbpe container.
)

// IsBitPacked reports whether the section is universal-coded with a padding field.
func (s SectionType) IsBitPacked() bool {
	return s < BitSections
}

// IsBiased reports whether the section values carry the +2 bias.
func (s SectionType) IsBiased() bool {
	return s == SectionLiteralLengths || s == SectionTokenLengths || s == SectionTokens
}

func (s SectionType) String() string {
	switch s {
	case SectionLiteralLengths:
		return "literal lengths"
	case SectionTokenLengths:
		return "token lengths"
	case SectionBytePairLengths:
		return "byte pair lengths"
	case SectionTokens:
		return "tokens"
	case SectionLiterals:
		return "literals"
	case SectionBytePairs:
		return "byte pairs"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSBPE:
		return "SBPE"
	default:
		return "Unknown"
	}
}

// AllSections returns the container sections in payload order.
func AllSections() []SectionType {
	return []SectionType{
		SectionLiteralLengths,
		SectionTokenLengths,
		SectionBytePairLengths,
		SectionTokens,
		SectionLiterals,
		SectionBytePairs,
	}
}
