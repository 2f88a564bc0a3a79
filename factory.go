package wsendpoint

import "reflect"

// EndpointFactory resolves endpoint metadata and assembles per-connection
// dispatch tables. Metadata introspection runs once per endpoint type; the
// factory owns its own cache so tests and independent servers can keep
// isolated registries.
type EndpointFactory struct {
	cache *metadataCache
}

func NewEndpointFactory() *EndpointFactory {
	return &EndpointFactory{cache: newMetadataCache()}
}

// GetMetadata returns the cached metadata for an endpoint type, computing it
// on first use.
func (f *EndpointFactory) GetMetadata(endpointType reflect.Type) (*Metadata, error) {
	return f.cache.getOrCreate(endpointType)
}

// CreateMetadata introspects the type without touching the cache.
func (f *EndpointFactory) CreateMetadata(endpointType reflect.Type) (*Metadata, error) {
	return introspect(endpointType)
}

// CreateDispatchTable builds the dispatch table for one connection: resolve
// metadata, clone the policy, bind every descriptor to instance and session,
// and construct the message sinks. Pure composition; nothing here is cached
// beyond the metadata itself, and a sink failure leaves the cached metadata
// intact for future connections.
func (f *EndpointFactory) CreateDispatchTable(instance any, session *Session, policy *Policy, executor Executor) (*DispatchTable, error) {
	metadata, err := f.GetMetadata(reflect.TypeOf(instance))
	if err != nil {
		return nil, err
	}

	if policy == nil {
		policy = DefaultPolicy()
	}
	endpointPolicy := policy.Clone()

	table := &DispatchTable{
		endpoint: instance,
		policy:   endpointPolicy,
		open:     bindHandler(metadata.open, instance, session),
		close:    bindHandler(metadata.close, instance, session),
		error:    bindHandler(metadata.error, instance, session),
		frame:    bindHandler(metadata.frame, instance, session),
		ping:     bindHandler(metadata.ping, instance, session),
		pong:     bindHandler(metadata.pong, instance, session),
	}

	textBound := bindHandler(metadata.text, instance, session)
	table.textSink, err = newSink(metadata.text, textBound, endpointPolicy, executor)
	if err != nil {
		return nil, err
	}

	binaryBound := bindHandler(metadata.binary, instance, session)
	table.binarySink, err = newSink(metadata.binary, binaryBound, endpointPolicy, executor)
	if err != nil {
		table.Release()
		return nil, err
	}

	return table, nil
}
