package itch

// Message sizes including the type byte.
const (
	sizeStockDirectory         = 39
	sizeAddOrder               = 36
	sizeAddOrderMPID           = 40
	sizeOrderExecuted          = 31
	sizeOrderExecutedWithPrice = 36
	sizeOrderCancel            = 23
	sizeOrderDelete            = 19
	sizeOrderReplace           = 35
)

func unmarshalStockDirectoryMessage(data []byte) (msg StockDirectoryMessage, err error) {
	if err = checkSize(data, sizeStockDirectory); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.Stock, data = readBytes8(data)
	msg.MarketCategory, data = readByte(data)
	data = data[1:] // financial status indicator
	msg.RoundLotSize, data = readUint32(data)
	msg.RoundLotsOnly, _ = readByte(data)
	return
}

func unmarshalAddOrderMessage(data []byte) (msg AddOrderMessage, err error) {
	size := sizeAddOrder
	if len(data) > 0 && data[0] == MessageTypeAddOrderMPID {
		size = sizeAddOrderMPID
	}
	if err = checkSize(data, size); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.OrderReferenceNumber, data = readUint64(data)
	msg.BuySellIndicator, data = readByte(data)
	msg.Shares, data = readUint32(data)
	msg.Stock, data = readBytes8(data)
	msg.Price, data = readUint32(data)
	if size == sizeAddOrderMPID {
		msg.Attribution, _ = readBytes4(data)
	}
	return
}

func unmarshalOrderExecutedMessage(data []byte) (msg OrderExecutedMessage, err error) {
	size := sizeOrderExecuted
	if len(data) > 0 && data[0] == MessageTypeOrderExecutedWithPrice {
		size = sizeOrderExecutedWithPrice
	}
	if err = checkSize(data, size); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.OrderReferenceNumber, data = readUint64(data)
	msg.ExecutedShares, data = readUint32(data)
	msg.MatchNumber, data = readUint64(data)
	if size == sizeOrderExecutedWithPrice {
		msg.Printable, data = readByte(data)
		msg.ExecutionPrice, _ = readUint32(data)
	}
	return
}

func unmarshalOrderCancelMessage(data []byte) (msg OrderCancelMessage, err error) {
	if err = checkSize(data, sizeOrderCancel); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.OrderReferenceNumber, data = readUint64(data)
	msg.CanceledShares, _ = readUint32(data)
	return
}

func unmarshalOrderDeleteMessage(data []byte) (msg OrderDeleteMessage, err error) {
	if err = checkSize(data, sizeOrderDelete); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.OrderReferenceNumber, _ = readUint64(data)
	return
}

func unmarshalOrderReplaceMessage(data []byte) (msg OrderReplaceMessage, err error) {
	if err = checkSize(data, sizeOrderReplace); err != nil {
		return
	}
	msg.Header, data = readHeader(data)
	msg.OriginalOrderReferenceNumber, data = readUint64(data)
	msg.NewOrderReferenceNumber, data = readUint64(data)
	msg.Shares, data = readUint32(data)
	msg.Price, _ = readUint32(data)
	return
}
