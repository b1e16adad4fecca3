package common

type EventPayload interface{}
type EventType int

const (
	TxAdded       EventType = iota
	TxPromoted    EventType = iota
	TxReplaced    EventType = iota
	TxMined       EventType = iota
	TxEvicted     EventType = iota
	TxInvalidated EventType = iota
)

// Event is fired by the pool on every observable mutation. Payload is the
// pooled transaction for additions and the transaction hash for removals.
type Event struct {
	T       EventType
	Payload EventPayload
}

func (t EventType) IsRemoval() bool {
	return t == TxMined || t == TxEvicted || t == TxInvalidated || t == TxReplaced
}
