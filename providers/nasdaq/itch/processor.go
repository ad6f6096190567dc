package itch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	// readBufferSize is the size of the buffered reader wrapping the input.
	readBufferSize = 1024 * 1024

	// ctxCheckInterval is the amount of messages processed between context checks.
	ctxCheckInterval = 4096
)

// ProcessorStats contains processor counters.
type ProcessorStats struct {
	Messages uint64 // all framed messages
	Handled  uint64 // messages passed to the handler
	Skipped  uint64 // messages of other types
}

// Processor reads a stream of length-prefixed ITCH 5.0 messages
// and passes order messages to the handler. Other message types are skipped.
// NOTE: Not thread-safe.
type Processor struct {
	handler        Handler
	unmarshalFuncs [256]func([]byte) error
	buf            [1<<16 - 1]byte
	stats          ProcessorStats
}

// NewProcessor creates and returns new Processor instance.
func NewProcessor(handler Handler) *Processor {
	p := &Processor{handler: handler}
	p.initialize()
	return p
}

// Stats returns processor counters.
func (p *Processor) Stats() ProcessorStats {
	return p.stats
}

// Process reads messages until the end of the stream, a handler error or the context is done.
// Every message is prefixed with its size as big-endian uint16.
func (p *Processor) Process(ctx context.Context, reader io.Reader) error {
	r := bufio.NewReaderSize(reader, readBufferSize)
	var prefix [2]byte
	for {
		if p.stats.Messages%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: size prefix: %v", ErrTruncatedMessage, err)
		}
		size, _ := readUint16(prefix[:])
		if size == 0 {
			continue
		}
		msg := p.buf[:size]
		if _, err := io.ReadFull(r, msg); err != nil {
			return fmt.Errorf("%w: expected %d bytes: %v", ErrTruncatedMessage, size, err)
		}

		p.stats.Messages++
		if err := p.ProcessMessage(msg); err != nil {
			return err
		}
	}
}

// ProcessMessage decodes a single message without the size prefix.
func (p *Processor) ProcessMessage(msg []byte) error {
	if len(msg) == 0 {
		return nil
	}
	unmarshal := p.unmarshalFuncs[msg[0]]
	if unmarshal == nil {
		p.stats.Skipped++
		return nil
	}
	p.stats.Handled++
	return unmarshal(msg)
}

func (p *Processor) initialize() {
	p.unmarshalFuncs[MessageTypeStockDirectory] = func(data []byte) error {
		msg, err := unmarshalStockDirectoryMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnStockDirectoryMessage(msg)
	}
	addOrder := func(data []byte) error {
		msg, err := unmarshalAddOrderMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnAddOrderMessage(msg)
	}
	p.unmarshalFuncs[MessageTypeAddOrder] = addOrder
	p.unmarshalFuncs[MessageTypeAddOrderMPID] = addOrder
	orderExecuted := func(data []byte) error {
		msg, err := unmarshalOrderExecutedMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnOrderExecutedMessage(msg)
	}
	p.unmarshalFuncs[MessageTypeOrderExecuted] = orderExecuted
	p.unmarshalFuncs[MessageTypeOrderExecutedWithPrice] = orderExecuted
	p.unmarshalFuncs[MessageTypeOrderCancel] = func(data []byte) error {
		msg, err := unmarshalOrderCancelMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnOrderCancelMessage(msg)
	}
	p.unmarshalFuncs[MessageTypeOrderDelete] = func(data []byte) error {
		msg, err := unmarshalOrderDeleteMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnOrderDeleteMessage(msg)
	}
	p.unmarshalFuncs[MessageTypeOrderReplace] = func(data []byte) error {
		msg, err := unmarshalOrderReplaceMessage(data)
		if err != nil {
			return err
		}
		return p.handler.OnOrderReplaceMessage(msg)
	}
}
