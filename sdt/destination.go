package sdt

import "github.com/gosmf/smf/format"

// Destination identifies a topic or queue endpoint carried in a message or
// a container field.
type Destination struct {
	Kind format.DestinationKind
	Name string
}

// Topic returns a topic destination with the given name.
func Topic(name string) Destination {
	return Destination{Kind: format.DestTopic, Name: name}
}

// Queue returns a queue destination with the given name.
func Queue(name string) Destination {
	return Destination{Kind: format.DestQueue, Name: name}
}

// TempTopic returns a temporary topic destination with the given name.
func TempTopic(name string) Destination {
	return Destination{Kind: format.DestTempTopic, Name: name}
}

// TempQueue returns a temporary queue destination with the given name.
func TempQueue(name string) Destination {
	return Destination{Kind: format.DestTempQueue, Name: name}
}

func (d Destination) String() string {
	return d.Kind.String() + ":" + d.Name
}
