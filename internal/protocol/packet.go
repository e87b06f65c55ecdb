package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Packet framing for the AO2 text protocol:
//
//	HEADER#field1#field2#...#%
//
// Field values travel escaped: '#', '%', '$' and '&' are reserved by the
// framing and by sub-field separators inside some packets.
const (
	FieldDelimiter   = "#"
	PacketTerminator = '%'
)

// MaxPacketSize bounds a single framed packet read from a client.
const MaxPacketSize = 16 * 1024

var (
	escaper   = strings.NewReplacer("#", "<num>", "%", "<percent>", "$", "<dollar>", "&", "<and>")
	unescaper = strings.NewReplacer("<num>", "#", "<percent>", "%", "<dollar>", "$", "<and>", "&")
)

// ErrPacketTooLarge is returned when a client sends more than MaxPacketSize
// bytes without a terminator.
var ErrPacketTooLarge = errors.New("packet too large")

// Escape encodes a field value for the wire.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape decodes a wire field value.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Packet is one AO2 packet. Fields hold wire (escaped) values.
type Packet struct {
	Header string
	Fields []string
}

// New builds a packet from plain values, escaping each of them.
func New(header string, values ...string) Packet {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = Escape(v)
	}
	return Packet{Header: header, Fields: fields}
}

// NewRaw builds a packet from fields that are already escaped.
// Used by packets whose fields carry '&'-separated sub-fields.
func NewRaw(header string, fields ...string) Packet {
	return Packet{Header: header, Fields: fields}
}

// Values returns the unescaped field values.
func (p Packet) Values() []string {
	values := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		values[i] = Unescape(f)
	}
	return values
}

// Encode serializes the packet including the trailing terminator.
func (p Packet) Encode() []byte {
	var b strings.Builder
	b.WriteString(p.Header)
	b.WriteString(FieldDelimiter)
	for _, f := range p.Fields {
		b.WriteString(f)
		b.WriteString(FieldDelimiter)
	}
	b.WriteByte(PacketTerminator)
	return []byte(b.String())
}

// String returns the encoded packet.
func (p Packet) String() string {
	return string(p.Encode())
}

// Decode parses one packet body without its terminator ("MS#a#b#").
func Decode(raw string) (Packet, error) {
	raw = strings.TrimLeft(raw, "\r\n")
	if raw == "" {
		return Packet{}, fmt.Errorf("empty packet")
	}

	parts := strings.Split(raw, FieldDelimiter)
	header := parts[0]
	if header == "" {
		return Packet{}, fmt.Errorf("packet without header")
	}

	fields := parts[1:]
	// A well-formed body ends with '#', which leaves one empty trailing part.
	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}

	return Packet{Header: header, Fields: fields}, nil
}

// Reader reads '%'-terminated packets from a stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for packet reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 4096)}
}

// ReadPacket reads and decodes the next packet.
// Returns io.EOF when the stream ends between packets.
func (r *Reader) ReadPacket() (Packet, error) {
	var b strings.Builder
	for {
		chunk, err := r.br.ReadSlice(PacketTerminator)
		if b.Len()+len(chunk) > MaxPacketSize {
			return Packet{}, ErrPacketTooLarge
		}
		b.Write(chunk)

		switch {
		case err == nil:
			body := b.String()
			return Decode(body[:len(body)-1])
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if b.Len() == 0 {
				return Packet{}, io.EOF
			}
			return Packet{}, io.ErrUnexpectedEOF
		default:
			return Packet{}, fmt.Errorf("reading packet: %w", err)
		}
	}
}
