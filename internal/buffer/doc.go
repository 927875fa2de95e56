// Package buffer provides fixed-capacity, null-terminated text buffers used to
// marshal strings into and out of console calls.
//
// Two buffer kinds exist:
//
//   - [Ansi] holds single-byte characters in a console code page.
//   - [Wide] holds UTF-16 code units.
//
// Both have a capacity fixed at construction that includes the trailing
// terminator, and both are mutated in place by the calls they are passed to
// through [Ansi.Raw] and [Wide.Raw]. Reading a buffer as text stops at the
// first zero element or at capacity, whichever comes first.
//
// # Construction
//
// Buffers are built either from text or from a capacity:
//
//	title := buffer.WideFromText("QUITEALONGTITLE") // Len() == 16
//	out, err := buffer.NewWide(256)                  // 256 zero units
//
// # Decoding
//
// [Ansi.Text] never fails. [Wide.Text] fails with a decode error when the
// retained units end in, or contain, an unpaired surrogate, which is the
// normal outcome of truncating a title between the two halves of a pair.
// [Wide.At] returns raw units without validation so such buffers can still be
// inspected.
//
// Buffers are not safe for concurrent mutation.
package buffer
