// Package blob encodes and decodes sbpe containers.
//
// A container is a 32-byte header followed by six sections. The first four
// sections hold universal-coded integer lists, the last two hold raw bytes:
//
//	literal lengths     length of every literal run (biased by 2)
//	token lengths       number of references in every token run (biased by 2)
//	byte-pair lengths   length of every stored vocabulary entry
//	tokens              storage index of every reference (biased by 2)
//	literals            concatenated literal bytes
//	byte pairs          concatenated vocabulary entries
//
// Runs alternate, starting and ending with a literal run: literal 0, token
// run 0, literal 1, ..., literal k. The first and last literal runs may be
// empty. Only vocabulary entries referenced at least once are stored.
//
// # Encoding
//
//	encoder, err := blob.NewEncoder(
//	    blob.WithSeed(1),
//	    blob.WithOptimizeAttempts(10),
//	)
//	if err != nil {
//	    return err
//	}
//
//	b, err := encoder.Encode(input)
//	if err != nil {
//	    return err
//	}
//	data := b.Bytes()
//
// # Decoding
//
//	decoder, err := blob.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//
//	output, err := decoder.Decode()
//
// Decoding validates the whole container before producing output. Every
// violation is reported as an error wrapping errs.ErrFormat.
//
// # Thread Safety
//
// An Encoder holds only configuration and may be shared between goroutines.
// A Decoder is bound to one container and should be used by one goroutine.
package blob
