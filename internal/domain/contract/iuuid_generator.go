package contract

// IUUIDGenerator generates unique identifiers for new records.
type IUUIDGenerator interface {
	NewUUID() string
}
