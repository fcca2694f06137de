// Package midi decodes 3-byte MIDI channel messages.
package midi

// A MIDI channel message is a status byte (kind in the high nibble, channel
// in the low nibble) followed by up to two data bytes. Transports deliver
// messages as fixed 3-byte tuples; shorter wire frames are zero-padded
// before decoding.
//
// Decoding is total: every byte triple decodes to some Event. Unrecognized
// status bytes produce KindUnknown, which is a valid outcome rather than an
// error, so a malformed message can never halt the control loop.
