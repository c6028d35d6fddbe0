package internal

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const lookupSubject = "teemo.lookup.completed"

type NATSClient struct {
	Conn   *nats.Conn
	logger *Logger
}

func NewNATSClient(cfg *Config, logger *Logger) (*NATSClient, error) {
	conn, err := nats.Connect(cfg.NATSUrl,
		nats.Name(cfg.NATSClientID),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSClient{Conn: conn, logger: logger}, nil
}

func (nc *NATSClient) Publish(subject string, data []byte) error {
	return nc.Conn.Publish(subject, data)
}

// Record publishes a lookup event for the audit worker. Publishing is
// fire-and-forget; a failed publish must not fail the request.
func (nc *NATSClient) Record(event LookupEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		nc.logger.Error("lookup_event_marshal_failed").
			Component("nats").
			Operation("record_lookup").
			Err(err).
			Log()
		return
	}

	if err := nc.Publish(lookupSubject, data); err != nil {
		nc.logger.Error("lookup_event_publish_failed").
			Component("nats").
			Operation("record_lookup").
			Lookup(event.Platform, event.Summoner, event.Endpoint).
			Err(err).
			Log()
	}
}

// StartAuditWorker consumes lookup events and persists them. Workers in
// the same queue group share the subject, so the gateway scales out
// without duplicating rows.
func (nc *NATSClient) StartAuditWorker(store AuditStore) (*nats.Subscription, error) {
	handler := func(msg *nats.Msg) {
		nc.processLookupEvent(msg, store)
	}

	sub, err := nc.Conn.QueueSubscribe(lookupSubject, "audit-workers", handler)
	if err != nil {
		return nil, err
	}

	nc.logger.Info("audit_worker_started").
		Component("nats").
		Operation("start_audit_worker").
		Meta("subject", lookupSubject).
		Log()
	return sub, nil
}

func (nc *NATSClient) processLookupEvent(msg *nats.Msg, store AuditStore) {
	var event LookupEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		nc.logger.Error("lookup_event_unmarshal_failed").
			Component("nats").
			Operation("process_lookup_event").
			Err(err).
			Log()
		return
	}

	if err := store.RecordLookup(event); err != nil {
		nc.logger.Error("lookup_event_store_failed").
			Component("nats").
			Operation("process_lookup_event").
			Lookup(event.Platform, event.Summoner, event.Endpoint).
			Err(err).
			Log()
		return
	}

	nc.logger.Debug("lookup_event_stored").
		Component("nats").
		Operation("process_lookup_event").
		Lookup(event.Platform, event.Summoner, event.Endpoint).
		Meta("request_id", event.RequestID).
		Log()
}
