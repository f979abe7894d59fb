package imageio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
	"github.com/gogpu/pixbuf/surface"
)

// Raw dumps store a surface's elements exactly as laid out by its format:
//
//	"PXB1"            magic
//	u8 n, n bytes     format name, e.g. "YUV420Planar"
//	u8 n, n bytes     channel type, e.g. "uint16"
//	u32 LE, u32 LE    width, height
//	zstd frame        elements, little endian
const rawMagic = "PXB1"

// WriteRaw writes v as a zstd-compressed raw dump.
func WriteRaw[C channel.Channel, P any, F format.Format[C, P]](w io.Writer, v *surface.View[C, P, F]) error {
	var f F
	var hdr bytes.Buffer
	hdr.WriteString(rawMagic)
	writeName(&hdr, f.String())
	writeName(&hdr, channelName[C]())
	_ = binary.Write(&hdr, binary.LittleEndian, [2]uint32{uint32(v.Width()), uint32(v.Height())})
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := binary.Write(enc, binary.LittleEndian, surface.Elements(v)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadRaw reads a dump written by WriteRaw. The dump's format and channel
// type must match F and C exactly; otherwise ReadRaw fails with
// ErrUnsupportedFormat.
func ReadRaw[C channel.Channel, P any, F format.Format[C, P]](r io.Reader) (*surface.Surface[C, P, F], error) {
	br := bufio.NewReader(r)
	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: missing magic", ErrInvalidHeader)
	}
	if string(magic[:]) != rawMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic[:])
	}
	name, err := readName(br)
	if err != nil {
		return nil, err
	}
	elem, err := readName(br)
	if err != nil {
		return nil, err
	}
	var dims [2]uint32
	if err := binary.Read(br, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: dimensions: %w", ErrInvalidHeader, err)
	}

	var f F
	if name != f.String() || elem != channelName[C]() {
		return nil, fmt.Errorf("%w: dump holds %s/%s, want %s/%s",
			ErrUnsupportedFormat, name, elem, f.String(), channelName[C]())
	}
	w, h := int(dims[0]), int(dims[1])
	if uint64(dims[0])*uint64(dims[1]) > MaxPixels {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, w, h)
	}
	n, err := dataSize[C, P](f, w, h)
	if err != nil {
		return nil, err
	}
	pixbuf.Logger().Debug("imageio: raw header", "format", name, "channel", elem, "width", w, "height", h)

	dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrTruncated, err)
	}
	defer dec.Close()

	// The payload is read before anything is sized by the header, so a
	// short dump costs only what it actually decompresses to.
	var zero C
	want := int64(n) * int64(binary.Size(zero))
	payload, err := io.ReadAll(io.LimitReader(dec, want+1))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrTruncated, err)
	}
	if int64(len(payload)) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, %s %dx%d needs %d",
			ErrTruncated, len(payload), name, w, h, want)
	}
	data := make([]C, n)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrTruncated, err)
	}
	return surface.New[C, P, F](w, h, data), nil
}

// dataSize turns the format's dimension panic into a header error.
func dataSize[C channel.Channel, P any, F format.Format[C, P]](f F, w, h int) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidHeader, r)
		}
	}()
	return f.DataSize(w, h), nil
}

func channelName[C channel.Channel]() string {
	var zero C
	return fmt.Sprintf("%T", zero)
}

func writeName(b *bytes.Buffer, s string) {
	b.WriteByte(byte(len(s)))
	b.WriteString(s)
}

func readName(r *bufio.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w: missing name", ErrInvalidHeader)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: short name", ErrInvalidHeader)
	}
	return string(buf), nil
}
