// Package hexlit converts between binary data and the C initializer lists used
// to embed it in firmware sources.
//
// [Format] renders bytes as `0x` literals, twelve per line. [Extract] goes the
// other way, pulling every `0x` literal out of arbitrary text, so it accepts
// both the formatter's output and hand-written or third-party headers.
package hexlit
