package dispatchz

import "fmt"

// AnnotationKind classifies an annotation.
type AnnotationKind uint8

// Annotation kinds follow the zipkin vocabulary.
const (
	KindClientSend AnnotationKind = iota + 1
	KindClientRecv
	KindServerSend
	KindServerRecv
	KindWireSend
	KindWireRecv
	KindProducerStart
	KindProducerStop
	KindConsumerStart
	KindConsumerStop
	KindRPC
	KindServiceName
	KindLocalOperationStart
	KindLocalOperationStop
	KindEvent
	KindTag
)

var kindNames = map[AnnotationKind]string{
	KindClientSend:          "cs",
	KindClientRecv:          "cr",
	KindServerSend:          "ss",
	KindServerRecv:          "sr",
	KindWireSend:            "ws",
	KindWireRecv:            "wr",
	KindProducerStart:       "ms",
	KindProducerStop:        "ms.stop",
	KindConsumerStart:       "mr",
	KindConsumerStop:        "mr.stop",
	KindRPC:                 "rpc",
	KindServiceName:         "service",
	KindLocalOperationStart: "lc.start",
	KindLocalOperationStop:  "lc.stop",
	KindEvent:               "event",
	KindTag:                 "tag",
}

func (k AnnotationKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Annotation is the payload of a record.
// Key is only used by tags; Value holds the name, event or tag value.
type Annotation struct {
	Key   string
	Value string
	Kind  AnnotationKind
}

func (a Annotation) String() string {
	switch a.Kind {
	case KindTag:
		return fmt.Sprintf("%s %s=%s", a.Kind, a.Key, a.Value)
	case KindRPC, KindServiceName, KindLocalOperationStart, KindEvent:
		return fmt.Sprintf("%s %s", a.Kind, a.Value)
	default:
		return a.Kind.String()
	}
}

// ClientSend marks the client sending the request.
func ClientSend() Annotation { return Annotation{Kind: KindClientSend} }

// ClientRecv marks the client receiving the response.
func ClientRecv() Annotation { return Annotation{Kind: KindClientRecv} }

// ServerSend marks the server sending the response.
func ServerSend() Annotation { return Annotation{Kind: KindServerSend} }

// ServerRecv marks the server receiving the request.
func ServerRecv() Annotation { return Annotation{Kind: KindServerRecv} }

// WireSend marks the request leaving the host.
func WireSend() Annotation { return Annotation{Kind: KindWireSend} }

// WireRecv marks the response reaching the host.
func WireRecv() Annotation { return Annotation{Kind: KindWireRecv} }

// ProducerStart marks a message producer starting to send.
func ProducerStart() Annotation { return Annotation{Kind: KindProducerStart} }

// ProducerStop marks a message producer done sending.
func ProducerStop() Annotation { return Annotation{Kind: KindProducerStop} }

// ConsumerStart marks a message consumer starting to process.
func ConsumerStart() Annotation { return Annotation{Kind: KindConsumerStart} }

// ConsumerStop marks a message consumer done processing.
func ConsumerStop() Annotation { return Annotation{Kind: KindConsumerStop} }

// RPC names the remote operation.
func RPC(name string) Annotation { return Annotation{Kind: KindRPC, Value: name} }

// ServiceName names the local service.
func ServiceName(name string) Annotation { return Annotation{Kind: KindServiceName, Value: name} }

// LocalOperationStart opens an in-process operation.
func LocalOperationStart(name string) Annotation {
	return Annotation{Kind: KindLocalOperationStart, Value: name}
}

// LocalOperationStop closes the in-process operation.
func LocalOperationStop() Annotation { return Annotation{Kind: KindLocalOperationStop} }

// Event records a named point in time.
func Event(name string) Annotation { return Annotation{Kind: KindEvent, Value: name} }

// Tag attaches a key/value pair to the span.
func Tag(key, value string) Annotation { return Annotation{Kind: KindTag, Key: key, Value: value} }
