package compress

import "github.com/arloliu/sbpe/blob"

// SBPECompressor adapts the sbpe container codec to the Codec interface.
type SBPECompressor struct {
	opts []blob.EncoderOption
}

var _ Codec = (*SBPECompressor)(nil)

// NewSBPECompressor creates a compressor that encodes with the given options.
func NewSBPECompressor(opts ...blob.EncoderOption) SBPECompressor {
	return SBPECompressor{opts: opts}
}

// Compress encodes data into an sbpe container.
func (c SBPECompressor) Compress(data []byte) ([]byte, error) {
	encoder, err := blob.NewEncoder(c.opts...)
	if err != nil {
		return nil, err
	}

	b, err := encoder.Encode(data)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Decompress decodes an sbpe container.
//
// Unlike the other codecs, an empty input is not a valid container.
func (c SBPECompressor) Decompress(data []byte) ([]byte, error) {
	decoder, err := blob.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}
