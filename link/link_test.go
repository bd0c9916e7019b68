package link

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-rmcv"
)

// mockPort records writes in memory
type mockPort struct {
	bytes.Buffer
	closed bool
	err    error
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.Buffer.Write(p)
}

func (m *mockPort) Close() error {
	m.closed = true
	return nil
}

func TestLinkSend(t *testing.T) {
	port := &mockPort{}
	l := New(port)

	sf := rmcv.ShootFactor{PitchAngle: 3.5, YawAngle: -12.25, EstimateAirTime: 0.5}

	require.NoError(t, l.Send(sf))
	require.NoError(t, l.Send(sf))
	assert.Equal(t, 2*FrameSize, port.Len())

	frame := port.Next(FrameSize)
	assert.Equal(t, FrameHeader, frame[0])

	got, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, sf, got)

	require.NoError(t, l.Close())
	assert.True(t, port.closed)
}

func TestLinkSendError(t *testing.T) {
	port := &mockPort{err: errors.New("device gone")}
	l := New(port)

	err := l.Send(rmcv.ShootFactor{})
	assert.ErrorContains(t, err, "device gone")
}

func TestDecodeRejectsCorruptFrame(t *testing.T) {
	frame := Encode(rmcv.ShootFactor{PitchAngle: 1, YawAngle: 2, EstimateAirTime: 0.25})

	_, err := Decode(frame[:FrameSize-1])
	assert.ErrorIs(t, err, ErrFrame)

	frame[4] ^= 0xFF
	_, err = Decode(frame)
	assert.ErrorIs(t, err, ErrFrame)
}
