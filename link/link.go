package link

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/swdee/go-rmcv"
	"go.bug.st/serial"
)

const (
	// FrameHeader marks the start of every shoot factor frame
	FrameHeader byte = 0xA5
	// FrameSize is the length in bytes of an encoded frame
	FrameSize = 14
)

// ErrFrame is returned when decoding a malformed frame
var ErrFrame = errors.New("malformed shoot factor frame")

// Link sends shoot factors to the aim actuation controller
type Link struct {
	port io.WriteCloser
	mu   sync.Mutex
	buf  [FrameSize]byte
}

// New returns a Link writing frames to port
func New(port io.WriteCloser) *Link {
	return &Link{port: port}
}

// Open returns a Link backed by the serial port at path
func Open(path string, baudRate int) (*Link, error) {

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)

	if err != nil {
		return nil, fmt.Errorf("error opening serial port %s: %w", path, err)
	}

	return New(port), nil
}

// Send encodes and writes a shoot factor
func (l *Link) Send(sf rmcv.ShootFactor) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	encode(l.buf[:], sf)

	if _, err := l.port.Write(l.buf[:]); err != nil {
		return fmt.Errorf("error writing shoot factor: %w", err)
	}

	return nil
}

// Close closes the underlying port
func (l *Link) Close() error {
	return l.port.Close()
}

// Encode returns the wire frame for a shoot factor.  The frame is the header
// byte, pitch, yaw and air time as little endian float32 and a checksum byte
// holding the sum of all preceding bytes.
func Encode(sf rmcv.ShootFactor) []byte {
	buf := make([]byte, FrameSize)
	encode(buf, sf)
	return buf
}

func encode(buf []byte, sf rmcv.ShootFactor) {
	buf[0] = FrameHeader
	binary.LittleEndian.PutUint32(buf[1:], math.Float32bits(sf.PitchAngle))
	binary.LittleEndian.PutUint32(buf[5:], math.Float32bits(sf.YawAngle))
	binary.LittleEndian.PutUint32(buf[9:], math.Float32bits(float32(sf.EstimateAirTime)))
	buf[13] = checksum(buf[:13])
}

// Decode parses a frame produced by Encode
func Decode(buf []byte) (rmcv.ShootFactor, error) {

	if len(buf) != FrameSize || buf[0] != FrameHeader {
		return rmcv.ShootFactor{}, ErrFrame
	}

	if checksum(buf[:13]) != buf[13] {
		return rmcv.ShootFactor{}, fmt.Errorf("%w: checksum mismatch", ErrFrame)
	}

	return rmcv.ShootFactor{
		PitchAngle:      math.Float32frombits(binary.LittleEndian.Uint32(buf[1:])),
		YawAngle:        math.Float32frombits(binary.LittleEndian.Uint32(buf[5:])),
		EstimateAirTime: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[9:]))),
	}, nil
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}
