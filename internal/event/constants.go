package event

// EventSchemaVersion is the current version of every published event's schema
const EventSchemaVersion = "1.0"
