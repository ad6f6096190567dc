package itch

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder is a handler collecting all messages.
type recorder struct {
	directories []StockDirectoryMessage
	adds        []AddOrderMessage
	executions  []OrderExecutedMessage
	cancels     []OrderCancelMessage
	deletes     []OrderDeleteMessage
	replaces    []OrderReplaceMessage
	err         error
}

func (r *recorder) OnStockDirectoryMessage(msg StockDirectoryMessage) error {
	r.directories = append(r.directories, msg)
	return r.err
}

func (r *recorder) OnAddOrderMessage(msg AddOrderMessage) error {
	r.adds = append(r.adds, msg)
	return r.err
}

func (r *recorder) OnOrderExecutedMessage(msg OrderExecutedMessage) error {
	r.executions = append(r.executions, msg)
	return r.err
}

func (r *recorder) OnOrderCancelMessage(msg OrderCancelMessage) error {
	r.cancels = append(r.cancels, msg)
	return r.err
}

func (r *recorder) OnOrderDeleteMessage(msg OrderDeleteMessage) error {
	r.deletes = append(r.deletes, msg)
	return r.err
}

func (r *recorder) OnOrderReplaceMessage(msg OrderReplaceMessage) error {
	r.replaces = append(r.replaces, msg)
	return r.err
}

// builder writes length-prefixed messages.
type builder struct {
	bytes.Buffer
}

func (b *builder) message(msgType byte, locate uint16, ts time.Duration, fields ...any) {
	var body bytes.Buffer
	body.WriteByte(msgType)
	_ = binary.Write(&body, binary.BigEndian, locate)
	_ = binary.Write(&body, binary.BigEndian, uint16(7)) // tracking number
	ns := uint64(ts)
	body.Write([]byte{byte(ns >> 40), byte(ns >> 32), byte(ns >> 24), byte(ns >> 16), byte(ns >> 8), byte(ns)})
	for _, f := range fields {
		_ = binary.Write(&body, binary.BigEndian, f)
	}
	_ = binary.Write(&b.Buffer, binary.BigEndian, uint16(body.Len()))
	b.Write(body.Bytes())
}

func stock(name string) [8]byte {
	s := [8]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}
	copy(s[:], name)
	return s
}

func TestProcessor(t *testing.T) {
	ts := 9*time.Hour + 30*time.Minute + 15*time.Nanosecond

	var b builder
	b.message('R', 1, ts, stock("AAPL"), byte('Q'), byte('N'), uint32(100), byte('N'), [13]byte{})
	b.message('S', 0, ts, byte('O')) // system event is skipped
	b.message('A', 1, ts, uint64(10), byte('B'), uint32(300), stock("AAPL"), uint32(1_234_500))
	b.message('F', 1, ts, uint64(11), byte('S'), uint32(200), stock("AAPL"), uint32(1_240_000), [4]byte{'G', 'S', 'C', 'O'})
	b.message('E', 1, ts, uint64(10), uint32(100), uint64(555))
	b.message('C', 1, ts, uint64(11), uint32(50), uint64(556), byte('Y'), uint32(1_239_900))
	b.message('X', 1, ts, uint64(10), uint32(20))
	b.message('U', 1, ts, uint64(11), uint64(12), uint32(150), uint32(1_238_000))
	b.message('D', 1, ts, uint64(12))

	r := &recorder{}
	p := NewProcessor(r)
	require.NoError(t, p.Process(context.Background(), &b))
	require.Equal(t, ProcessorStats{Messages: 9, Handled: 8, Skipped: 1}, p.Stats())

	require.Len(t, r.directories, 1)
	require.Equal(t, Header{Type: 'R', StockLocate: 1, TrackingNumber: 7, Timestamp: ts}, r.directories[0].Header)
	require.Equal(t, stock("AAPL"), r.directories[0].Stock)
	require.Equal(t, uint32(100), r.directories[0].RoundLotSize)

	require.Equal(t, []AddOrderMessage{
		{
			Header:               Header{Type: 'A', StockLocate: 1, TrackingNumber: 7, Timestamp: ts},
			OrderReferenceNumber: 10,
			BuySellIndicator:     IndicatorBuy,
			Shares:               300,
			Stock:                stock("AAPL"),
			Price:                1_234_500,
		},
		{
			Header:               Header{Type: 'F', StockLocate: 1, TrackingNumber: 7, Timestamp: ts},
			OrderReferenceNumber: 11,
			BuySellIndicator:     IndicatorSell,
			Shares:               200,
			Stock:                stock("AAPL"),
			Price:                1_240_000,
			Attribution:          [4]byte{'G', 'S', 'C', 'O'},
		},
	}, r.adds)

	require.Len(t, r.executions, 2)
	require.Equal(t, uint32(100), r.executions[0].ExecutedShares)
	require.Equal(t, uint32(0), r.executions[0].ExecutionPrice)
	require.Equal(t, uint64(556), r.executions[1].MatchNumber)
	require.Equal(t, uint32(1_239_900), r.executions[1].ExecutionPrice)

	require.Equal(t, uint32(20), r.cancels[0].CanceledShares)
	require.Equal(t, uint64(12), r.replaces[0].NewOrderReferenceNumber)
	require.Equal(t, uint32(1_238_000), r.replaces[0].Price)
	require.Equal(t, uint64(12), r.deletes[0].OrderReferenceNumber)
}

func TestProcessorErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		var b builder
		b.message('D', 1, 0, uint64(12))
		data := b.Bytes()
		err := NewProcessor(&recorder{}).Process(context.Background(), bytes.NewReader(data[:len(data)-1]))
		require.ErrorIs(t, err, ErrTruncatedMessage)
	})

	t.Run("invalid size", func(t *testing.T) {
		var b builder
		b.message('D', 1, 0, uint32(12))
		err := NewProcessor(&recorder{}).Process(context.Background(), &b)
		require.ErrorIs(t, err, ErrInvalidMessageSize)
	})

	t.Run("handler error", func(t *testing.T) {
		var b builder
		b.message('D', 1, 0, uint64(12))
		b.message('D', 1, 0, uint64(13))
		stop := errors.New("stop")
		r := &recorder{err: stop}
		err := NewProcessor(r).Process(context.Background(), &b)
		require.ErrorIs(t, err, stop)
		require.Len(t, r.deletes, 1)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var b builder
		b.message('D', 1, 0, uint64(12))
		err := NewProcessor(&recorder{}).Process(ctx, &b)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func BenchmarkUnmarshalMessages(b *testing.B) {
	data := [64]byte{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data[0] = MessageTypeAddOrder
		_, _ = unmarshalAddOrderMessage(data[:sizeAddOrder])
		data[0] = MessageTypeOrderExecuted
		_, _ = unmarshalOrderExecutedMessage(data[:sizeOrderExecuted])
		data[0] = MessageTypeOrderCancel
		_, _ = unmarshalOrderCancelMessage(data[:sizeOrderCancel])
		data[0] = MessageTypeOrderDelete
		_, _ = unmarshalOrderDeleteMessage(data[:sizeOrderDelete])
		data[0] = MessageTypeOrderReplace
		_, _ = unmarshalOrderReplaceMessage(data[:sizeOrderReplace])
	}
}
